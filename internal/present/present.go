// Package present turns rendered pixel buffers into displayable images.
// It converts the packed 0x00RRGGBB format to image.RGBA, stamps the
// overlay text and selection rectangle, and encodes PNG frames.
package present

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	mandel "github.com/marben/mandel_explorer"
)

var (
	textColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	selectionColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	shadowColor    = color.RGBA{A: 160}
)

// textMargin is the distance of the overlay text from the top-left corner.
const textMargin = 8

// ToRGBA converts buf into a new opaque image.RGBA.
func ToRGBA(buf *mandel.PixelBuffer) *image.RGBA {
	if buf.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, int(buf.Width), int(buf.Height)))
	CopyToRGBA(img, buf)
	return img
}

// CopyToRGBA converts buf into dst. Pixels outside the smaller of the two
// sizes are left untouched.
func CopyToRGBA(dst *image.RGBA, buf *mandel.PixelBuffer) {
	if buf.Empty() {
		return
	}
	w := min(int(buf.Width), dst.Rect.Dx())
	h := min(int(buf.Height), dst.Rect.Dy())
	stride := int(buf.StrideBytes)

	for y := 0; y < h; y++ {
		src := buf.Pix[y*stride : y*stride+w*mandel.BytesPerPixel]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(src); i += 4 {
			out[i+0] = src[i+2] // red
			out[i+1] = src[i+1] // green
			out[i+2] = src[i+0] // blue
			out[i+3] = 0xFF
		}
	}
}

// DrawOverlay stamps the status line and, when present, the selection outline.
func DrawOverlay(img draw.Image, ov mandel.Overlay) {
	if ov.HasSelection {
		DrawRectOutline(img, ov.Selection, selectionColor)
	}
	DrawText(img, textMargin, textMargin, ov.Text())
}

// DrawText writes s with its top-left corner at (x, y), on a dark backing
// strip so it stays readable on bright areas.
func DrawText(img draw.Image, x, y int, s string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
	}

	width := d.MeasureString(s).Ceil()
	backing := image.Rect(x-2, y-2, x+width+2, y+face.Height+2).Intersect(img.Bounds())
	draw.Draw(img, backing, image.NewUniform(shadowColor), image.Point{}, draw.Over)

	d.Dot = fixed.P(x, y+face.Ascent)
	d.DrawString(s)
}

// DrawRectOutline draws a one pixel wide rectangle outline, clipped to img.
func DrawRectOutline(img draw.Image, r image.Rectangle, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	b := img.Bounds()
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(b) {
			img.Set(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}

// Frame converts buf and stamps ov on top when withOverlay is set.
func Frame(buf *mandel.PixelBuffer, ov mandel.Overlay, withOverlay bool) *image.RGBA {
	img := ToRGBA(buf)
	if withOverlay {
		DrawOverlay(img, ov)
	}
	return img
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}

// PNGBytes encodes img into memory.
func PNGBytes(img image.Image) ([]byte, error) {
	var b bytes.Buffer
	if err := EncodePNG(&b, img); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// PNGFile presents frames by writing them to a PNG file.
type PNGFile struct {
	Path    string
	Overlay bool
}

var _ mandel.Presenter = PNGFile{}

// Present implements mandel.Presenter.
func (p PNGFile) Present(buf *mandel.PixelBuffer, ov mandel.Overlay) error {
	f, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := EncodePNG(f, Frame(buf, ov, p.Overlay)); err != nil {
		return err
	}
	return f.Close()
}
