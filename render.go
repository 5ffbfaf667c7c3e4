package mandel

import (
	"encoding/binary"
	"fmt"
)

// EscapeRadius2 is the squared escape radius.
const EscapeRadius2 = 4.0

// Escape iterates z = z^2 + c from z = 0 with c = (re, im).
// It returns the number of iterations performed and the squared modulus of
// the last z. iter == maxIter means the orbit stayed bounded.
func Escape(re, im float64, maxIter int32) (iter int32, mod2 float64) {
	var zx, zy, zx2, zy2 float64
	for zx2+zy2 <= EscapeRadius2 && iter < maxIter {
		zy = 2*zx*zy + im
		zx = zx2 - zy2 + re
		zx2 = zx * zx
		zy2 = zy * zy
		iter++
	}
	return iter, zx2 + zy2
}

// Render fills buf with the view v colored by p.
// It writes every pixel of buf exactly once and never resizes it.
// An empty buffer is a no-op.
func Render(v Viewport, p RenderParams, buf *PixelBuffer) error {
	if buf.Empty() {
		return nil
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	w, h := int(buf.Width), int(buf.Height)
	rowPixels := buf.RowPixels()

	if p.MaxIterations <= 0 {
		// nothing to iterate; every point escapes at iteration 0
		buf.Fill(p.Ramp.Min())
		return nil
	}

	for y := 0; y < h; y++ {
		rowBase := y * rowPixels
		_, im := v.PixelToWorld(0, float64(y), w, h)

		for x := 0; x < w; x++ {
			re, _ := v.PixelToWorld(float64(x), 0, w, h)

			iter, mod2 := Escape(re, im, p.MaxIterations)
			c := p.Color(iter, mod2)

			off := (rowBase + x) * BytesPerPixel
			binary.LittleEndian.PutUint32(buf.Pix[off:off+BytesPerPixel], c.Pixel())
		}
	}
	return nil
}
