package mandel

import (
	"errors"
	"testing"
)

func TestEscapeOutsideRadiusTwo(t *testing.T) {
	points := [][2]float64{{2.1, 0}, {0, -3}, {1.5, 1.5}, {-2.0001, 0}, {100, 100}}
	for _, c := range points {
		iter, mod2 := Escape(c[0], c[1], 1000)
		if iter != 1 {
			t.Errorf("Escape(%v) = %d iterations, want 1", c, iter)
		}
		if mod2 <= EscapeRadius2 {
			t.Errorf("Escape(%v) mod2 = %g, want > 4", c, mod2)
		}
	}
}

func TestEscapeBoundedOrbits(t *testing.T) {
	points := [][2]float64{{0, 0}, {-1, 0}, {-0.75, 0}, {0.25, 0}, {-0.1, 0.1}}
	for _, c := range points {
		if iter, _ := Escape(c[0], c[1], 500); iter != 500 {
			t.Errorf("Escape(%v) = %d, want 500 (bounded)", c, iter)
		}
	}
}

func TestEscapeNonPositiveMax(t *testing.T) {
	for _, m := range []int32{0, -5} {
		if iter, _ := Escape(0, 0, m); iter != 0 {
			t.Errorf("Escape(0, 0, %d) = %d, want 0", m, iter)
		}
	}
}

func TestRenderScenario(t *testing.T) {
	buf := NewPixelBuffer(800, 600, 4)
	p := RenderParams{MaxIterations: 100, Ramp: DefaultRamp}

	if err := Render(ResetViewport(), p, buf); err != nil {
		t.Fatal(err)
	}

	if c := buf.RGBAt(400, 300); c != Black {
		t.Errorf("center pixel = %+v, want black", c)
	}

	// top-left corner is far outside the set
	re, im := ResetViewport().PixelToWorld(0, 0, 800, 600)
	iter, mod2 := Escape(re, im, 100)
	if iter >= 100 {
		t.Fatalf("top-left corner did not escape")
	}
	if got, want := buf.RGBAt(0, 0), p.Color(iter, mod2); got != want {
		t.Errorf("top-left pixel = %+v, want %+v", got, want)
	}
}

func TestRenderPixelFormat(t *testing.T) {
	buf := NewPixelBuffer(1, 1, 4)
	// far outside: escapes at iteration 1
	v := Viewport{CenterReal: 10, CenterImag: 10, Scale: 1}
	p := RenderParams{
		MaxIterations: 2,
		Ramp:          ColorRamp{RedMin: 0, RedMax: 200, GreenMin: 10, GreenMax: 30, BlueMin: 100, BlueMax: 50},
	}
	if err := Render(v, p, buf); err != nil {
		t.Fatal(err)
	}
	// t = 1/2: red 100, green 20, blue 75
	want := []byte{75, 20, 100, 0}
	for i, b := range want {
		if buf.Pix[i] != b {
			t.Fatalf("pixel bytes = %v, want %v", buf.Pix[:4], want)
		}
	}
	if px := buf.Pixel(0, 0); px != 0x0064144B {
		t.Errorf("packed pixel = %#08x, want 0x0064144b", px)
	}
}

func TestRenderRespectsStride(t *testing.T) {
	const w, h = 13, 7
	buf := NewPixelBuffer(w, h, 64)
	if buf.StrideBytes != 64 {
		t.Fatalf("stride = %d, want 64", buf.StrideBytes)
	}
	for i := range buf.Pix {
		buf.Pix[i] = 0xAA
	}

	p := RenderParams{MaxIterations: 20, Ramp: DefaultRamp}
	v := Viewport{CenterReal: -0.5, CenterImag: 0, Scale: 0.3}
	if err := Render(v, p, buf); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < h; y++ {
		row := buf.Pix[y*int(buf.StrideBytes) : (y+1)*int(buf.StrideBytes)]
		for i := w * BytesPerPixel; i < len(row); i++ {
			if row[i] != 0xAA {
				t.Fatalf("row %d padding byte %d overwritten", y, i)
			}
		}
		for x := 0; x < w; x++ {
			re, im := v.PixelToWorld(float64(x), float64(y), w, h)
			iter, mod2 := Escape(re, im, p.MaxIterations)
			if got, want := buf.RGBAt(x, y), p.Color(iter, mod2); got != want {
				t.Errorf("pixel (%d, %d) = %+v, want %+v", x, y, got, want)
			}
			if buf.Pix[y*int(buf.StrideBytes)+x*BytesPerPixel+3] != 0 {
				t.Errorf("pixel (%d, %d) unused byte not zero", x, y)
			}
		}
	}
}

func TestRenderEmptyBuffer(t *testing.T) {
	p := DefaultParams()
	v := ResetViewport()

	bufs := []*PixelBuffer{
		nil,
		{},
		{Width: 0, Height: 10, StrideBytes: 0, Pix: []byte{}},
		{Width: 10, Height: 0, StrideBytes: 40},
	}
	for _, b := range bufs {
		if err := Render(v, p, b); err != nil {
			t.Errorf("Render(%+v) = %v, want nil", b, err)
		}
	}
}

func TestRenderInvalidBuffer(t *testing.T) {
	p := DefaultParams()
	v := ResetViewport()

	tests := []struct {
		name string
		buf  *PixelBuffer
		want error
	}{
		{"stride too small", &PixelBuffer{Width: 10, Height: 2, StrideBytes: 36, Pix: make([]byte, 80)}, ErrInvalidStride},
		{"stride not aligned", &PixelBuffer{Width: 10, Height: 2, StrideBytes: 42, Pix: make([]byte, 84)}, ErrInvalidStride},
		{"short memory", &PixelBuffer{Width: 10, Height: 2, StrideBytes: 40, Pix: make([]byte, 79)}, ErrShortBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Render(v, p, tt.buf)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Render() = %v, want %v", err, tt.want)
			}
			for _, b := range tt.buf.Pix {
				if b != 0 {
					t.Fatalf("invalid buffer was written to")
				}
			}
		})
	}
}

func TestRenderLastRowWithoutPadding(t *testing.T) {
	// the last row only needs Width*4 bytes
	buf := &PixelBuffer{Width: 2, Height: 2, StrideBytes: 16, Pix: make([]byte, 16+8)}
	if err := Render(ResetViewport(), DefaultParams(), buf); err != nil {
		t.Fatal(err)
	}
}

func TestRenderZeroIterations(t *testing.T) {
	buf := NewPixelBuffer(5, 4, 4)
	p := RenderParams{MaxIterations: 0, Ramp: DefaultRamp}
	if err := Render(ResetViewport(), p, buf); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if c := buf.RGBAt(x, y); c != DefaultRamp.Min() {
				t.Fatalf("pixel (%d, %d) = %+v, want ramp minimum", x, y, c)
			}
		}
	}

	p.MaxIterations = -3
	if err := Render(ResetViewport(), p, buf); err != nil {
		t.Fatal(err)
	}
}

func TestRenderSmoothMode(t *testing.T) {
	buf := NewPixelBuffer(80, 60, 4)
	p := RenderParams{MaxIterations: 100, Ramp: DefaultRamp, Mode: ModeSmoothHSV}
	v := Viewport{CenterReal: -0.75, CenterImag: 0, Scale: 3.0 / 80}
	if err := Render(v, p, buf); err != nil {
		t.Fatal(err)
	}
	if c := buf.RGBAt(40, 30); c != Black {
		t.Errorf("center = %+v, want black", c)
	}
	if c := buf.RGBAt(0, 0); c == Black {
		t.Errorf("escaped corner rendered black")
	}
}
