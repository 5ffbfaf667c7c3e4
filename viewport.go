package mandel

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Default view: the whole set in an 800 pixel wide window.
const (
	DefaultCenterReal = -0.75
	DefaultCenterImag = 0.0
	DefaultScale      = 3.0 / 800.0
)

// Wheel zoom factors per notch. They are inverse of each other.
const (
	ZoomInFactor  = 0.8
	ZoomOutFactor = 1.25

	// WheelNotch is the wheel delta of a single notch.
	WheelNotch = 120
)

// MaxWorldHeight bounds the world height accepted from the properties form.
const MaxWorldHeight = 1e7

// Errors returned by the viewport transforms.
var (
	ErrDegenerateRect = errors.New("degenerate rectangle")
	ErrInvalidHeight  = errors.New("world height must be finite, positive and at most 1e7")
)

// Viewport places the pixel grid in the complex plane.
// Scale is world units per pixel and must be > 0.
type Viewport struct {
	CenterReal float64
	CenterImag float64
	Scale      float64
}

// ResetViewport returns the default view. It does not depend on the window size.
func ResetViewport() Viewport {
	return Viewport{
		CenterReal: DefaultCenterReal,
		CenterImag: DefaultCenterImag,
		Scale:      DefaultScale,
	}
}

// PixelToWorld maps pixel (px, py) to the complex plane.
// Pixel rows grow downward while the imaginary axis grows upward.
func (v Viewport) PixelToWorld(px, py float64, width, height int) (re, im float64) {
	re = v.CenterReal + (px-float64(width)/2)*v.Scale
	im = v.CenterImag - (py-float64(height)/2)*v.Scale
	return re, im
}

// WorldToPixel is the inverse of PixelToWorld.
func (v Viewport) WorldToPixel(re, im float64, width, height int) (px, py float64) {
	px = (re-v.CenterReal)/v.Scale + float64(width)/2
	py = (v.CenterImag-im)/v.Scale + float64(height)/2
	return px, py
}

// ZoomAroundPixel multiplies the scale by factor and keeps the world point
// under (px, py) at the same pixel.
func (v Viewport) ZoomAroundPixel(px, py float64, width, height int, factor float64) Viewport {
	re, im := v.PixelToWorld(px, py, width, height)
	newScale := v.Scale * factor

	dx := px - float64(width)/2
	dy := py - float64(height)/2
	return Viewport{
		CenterReal: re - dx*newScale,
		CenterImag: im + dy*newScale,
		Scale:      newScale,
	}
}

// WheelZoomFactor converts a mouse wheel delta into a scale factor.
// Positive deltas zoom in.
func WheelZoomFactor(delta int) float64 {
	switch {
	case delta > 0:
		return math.Pow(ZoomInFactor, float64(delta)/WheelNotch)
	case delta < 0:
		return math.Pow(ZoomOutFactor, float64(-delta)/WheelNotch)
	default:
		return 1
	}
}

// PanByPixelDelta moves the view so the content follows a drag of (dx, dy) pixels.
func (v Viewport) PanByPixelDelta(dx, dy float64) Viewport {
	return Viewport{
		CenterReal: v.CenterReal - dx*v.Scale,
		CenterImag: v.CenterImag + dy*v.Scale,
		Scale:      v.Scale,
	}
}

// FrameToPixelRect returns the viewport in which r fills the whole buffer width.
// Rectangles with no area return ErrDegenerateRect and must not be applied.
func (v Viewport) FrameToPixelRect(r image.Rectangle, width, height int) (Viewport, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return v, fmt.Errorf("frame %v: %w", r, ErrDegenerateRect)
	}
	if width <= 0 || height <= 0 {
		return v, fmt.Errorf("frame into %dx%d: %w", width, height, ErrDegenerateRect)
	}

	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	re, im := v.PixelToWorld(cx, cy, width, height)

	return Viewport{
		CenterReal: re,
		CenterImag: im,
		Scale:      v.Scale * (float64(r.Dx()) / float64(width)),
	}, nil
}

// HeightToScale converts a world-space height spanning bufferHeight pixels into a scale.
func HeightToScale(height float64, bufferHeight int) (float64, error) {
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 || height > MaxWorldHeight {
		return 0, fmt.Errorf("height %g: %w", height, ErrInvalidHeight)
	}
	if bufferHeight <= 0 {
		return 0, fmt.Errorf("buffer height %d: %w", bufferHeight, ErrInvalidHeight)
	}
	return height / float64(bufferHeight), nil
}

// ScaleToHeight is the inverse of HeightToScale.
func ScaleToHeight(scale float64, bufferHeight int) float64 {
	return scale * float64(bufferHeight)
}
