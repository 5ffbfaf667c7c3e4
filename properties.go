package mandel

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Properties.Apply.
var (
	ErrInvalidIterations = errors.New("max iterations must be positive")
	ErrInvalidCenter     = errors.New("center must be finite")
)

// Properties is the editable form of a view. The world Height is shown
// instead of the per-pixel scale.
type Properties struct {
	MaxIterations int32
	CenterReal    float64
	CenterImag    float64
	Height        float64
	Ramp          ColorRamp
	Mode          ColorMode
}

// PropertiesOf fills the form from the current state.
func PropertiesOf(v Viewport, p RenderParams, bufferHeight int) Properties {
	return Properties{
		MaxIterations: p.MaxIterations,
		CenterReal:    v.CenterReal,
		CenterImag:    v.CenterImag,
		Height:        ScaleToHeight(v.Scale, bufferHeight),
		Ramp:          p.Ramp,
		Mode:          p.Mode,
	}
}

// Apply validates the form and converts it back into state. Invalid input
// is rejected, never clamped; callers keep their previous state on error.
func (pr Properties) Apply(bufferHeight int) (Viewport, RenderParams, error) {
	if pr.MaxIterations <= 0 {
		return Viewport{}, RenderParams{}, fmt.Errorf("iterations %d: %w", pr.MaxIterations, ErrInvalidIterations)
	}
	if !finite(pr.CenterReal) || !finite(pr.CenterImag) {
		return Viewport{}, RenderParams{}, fmt.Errorf("center (%g, %g): %w", pr.CenterReal, pr.CenterImag, ErrInvalidCenter)
	}
	scale, err := HeightToScale(pr.Height, bufferHeight)
	if err != nil {
		return Viewport{}, RenderParams{}, err
	}

	v := Viewport{CenterReal: pr.CenterReal, CenterImag: pr.CenterImag, Scale: scale}
	p := RenderParams{MaxIterations: pr.MaxIterations, Ramp: pr.Ramp, Mode: pr.Mode}
	return v, p, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
