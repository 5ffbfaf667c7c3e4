package mandel

import "math"

// Interactive iteration bounds for the +/- keys.
const (
	MinStepIterations = 10
	MaxStepIterations = 5000

	DefaultMaxIterations = 50
)

// RenderParams is read-only during a render pass.
type RenderParams struct {
	MaxIterations int32
	Ramp          ColorRamp
	Mode          ColorMode
}

// DefaultParams returns the linear default ramp at DefaultMaxIterations.
func DefaultParams() RenderParams {
	return RenderParams{
		MaxIterations: DefaultMaxIterations,
		Ramp:          DefaultRamp,
		Mode:          ModeLinear,
	}
}

// Color maps an escape result to a color. iter >= MaxIterations is inside the set.
func (p RenderParams) Color(iter int32, mod2 float64) RGB {
	if p.MaxIterations <= 0 {
		return p.Ramp.Min()
	}
	if iter >= p.MaxIterations {
		return Black
	}
	if p.Mode == ModeSmoothHSV {
		return smoothColor(iter, p.MaxIterations, mod2)
	}
	return p.Ramp.At(iter, p.MaxIterations)
}

// WithMaxIterations returns a copy of p using n iterations.
func (p RenderParams) WithMaxIterations(n int32) RenderParams {
	p.MaxIterations = n
	return p
}

// MoreIterations is the '+' key step.
func MoreIterations(n int32) int32 {
	f := math.Trunc(float64(n)*1.25) + 10
	switch {
	case f > MaxStepIterations:
		return MaxStepIterations
	case f < MinStepIterations:
		return MinStepIterations
	}
	return int32(f)
}

// FewerIterations is the '-' key step.
func FewerIterations(n int32) int32 {
	f := math.Trunc(float64(n)*0.8) - 10
	if f < MinStepIterations {
		return MinStepIterations
	}
	return int32(f)
}
