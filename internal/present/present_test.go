package present

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	mandel "github.com/marben/mandel_explorer"
)

func TestToRGBASwizzle(t *testing.T) {
	buf := mandel.NewPixelBuffer(3, 2, 32)
	// padding must be ignored
	for i := range buf.Pix {
		buf.Pix[i] = 0x77
	}
	buf.SetPixel(0, 0, mandel.RGB{R: 10, G: 20, B: 30}.Pixel())
	buf.SetPixel(2, 1, mandel.RGB{R: 200, G: 100, B: 50}.Pixel())

	img := ToRGBA(buf)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("(0, 0) = %+v", c)
	}
	if c := img.RGBAAt(2, 1); c != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("(2, 1) = %+v", c)
	}
	if c := img.RGBAAt(1, 0); c != (color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 255}) {
		t.Errorf("(1, 0) = %+v", c)
	}
}

func TestCopyToRGBAClips(t *testing.T) {
	buf := mandel.NewPixelBuffer(4, 4, 4)
	buf.Fill(mandel.RGB{R: 1, G: 2, B: 3})
	dst := image.NewRGBA(image.Rect(0, 0, 2, 6))

	CopyToRGBA(dst, buf)
	if c := dst.RGBAAt(1, 3); c != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("(1, 3) = %+v", c)
	}
	if c := dst.RGBAAt(1, 5); c != (color.RGBA{}) {
		t.Errorf("(1, 5) outside the buffer = %+v", c)
	}

	CopyToRGBA(dst, &mandel.PixelBuffer{})
	if img := ToRGBA(nil); !img.Bounds().Empty() {
		t.Errorf("ToRGBA(nil) bounds = %v", img.Bounds())
	}
}

func TestDrawRectOutline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DrawRectOutline(img, image.Rect(2, 2, 6, 5), white)

	for _, p := range []image.Point{{2, 2}, {5, 2}, {2, 4}, {5, 4}, {3, 2}, {2, 3}} {
		if img.RGBAAt(p.X, p.Y) != white {
			t.Errorf("%v not on the outline", p)
		}
	}
	for _, p := range []image.Point{{3, 3}, {4, 3}, {6, 2}, {2, 5}} {
		if img.RGBAAt(p.X, p.Y) == white {
			t.Errorf("%v drawn but is not on the outline", p)
		}
	}

	// partly outside the image
	DrawRectOutline(img, image.Rect(-5, -5, 20, 20), white)
	DrawRectOutline(img, image.Rect(3, 3, 3, 9), white)
}

func TestDrawOverlay(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 40))
	ov := mandel.NewExplorer(400, 40).Overlay()

	DrawOverlay(img, ov)

	lit := 0
	for y := textMargin; y < textMargin+13; y++ {
		for x := textMargin; x < 200; x++ {
			if img.RGBAAt(x, y).R == 255 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Errorf("no text drawn")
	}
	if c := img.RGBAAt(399, 39); c != (color.RGBA{}) {
		t.Errorf("overlay touched the far corner: %+v", c)
	}
}

func TestPNGFile(t *testing.T) {
	e := mandel.NewExplorer(40, 30)
	buf := mandel.NewPixelBuffer(40, 30, 64)
	if _, err := e.Repaint(buf); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := (PNGFile{Path: path}).Present(buf, e.Overlay()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(20, 15).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("center pixel not black: %d %d %d", r, g, b)
	}

	err = (PNGFile{Path: filepath.Join(t.TempDir(), "missing", "out.png")}).Present(buf, e.Overlay())
	if err == nil {
		t.Errorf("Present into a missing directory succeeded")
	}
}

func TestPNGBytes(t *testing.T) {
	b, err := PNGBytes(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Errorf("not a PNG: %x", b[:8])
	}
}
