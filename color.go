package mandel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownColorMode is returned by ParseColorMode for unrecognized names.
var ErrUnknownColorMode = errors.New("unknown color mode")

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of points inside the set.
var Black = RGB{}

// Pixel packs c as 0x00RRGGBB.
func (c RGB) Pixel() uint32 {
	return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16
}

// ColorRamp bounds the linear ramp per channel. Min is used at 0 iterations
// and Max at MaxIterations. Min > Max is allowed and gives a descending ramp.
type ColorRamp struct {
	RedMin, RedMax     uint8
	GreenMin, GreenMax uint8
	BlueMin, BlueMax   uint8
}

// DefaultRamp runs from dark red towards yellow.
var DefaultRamp = ColorRamp{
	RedMin: 100, RedMax: 255,
	GreenMin: 0, GreenMax: 255,
	BlueMin: 0, BlueMax: 0,
}

// Min is the color of a point escaping at iteration 0.
func (r ColorRamp) Min() RGB {
	return RGB{R: r.RedMin, G: r.GreenMin, B: r.BlueMin}
}

// At returns the ramp color for iter out of maxIter.
func (r ColorRamp) At(iter, maxIter int32) RGB {
	if maxIter <= 0 {
		return r.Min()
	}
	return RGB{
		R: lerp(r.RedMin, r.RedMax, iter, maxIter),
		G: lerp(r.GreenMin, r.GreenMax, iter, maxIter),
		B: lerp(r.BlueMin, r.BlueMax, iter, maxIter),
	}
}

// lerp multiplies before dividing; whole-number results stay exact.
func lerp(lo, hi uint8, iter, maxIter int32) uint8 {
	span := (float64(hi) - float64(lo)) * float64(iter)
	return uint8(float64(lo) + span/float64(maxIter))
}

// ColorMode selects how escaped points are colored.
type ColorMode uint8

const (
	// ModeLinear interpolates the ColorRamp by iteration count.
	ModeLinear ColorMode = iota
	// ModeSmoothHSV maps a continuous escape index onto the hue circle.
	ModeSmoothHSV
)

func (m ColorMode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeSmoothHSV:
		return "hsv"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// Next cycles through the available modes.
func (m ColorMode) Next() ColorMode {
	if m == ModeSmoothHSV {
		return ModeLinear
	}
	return ModeSmoothHSV
}

// ParseColorMode parses the names returned by ColorMode.String.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "ramp", "":
		return ModeLinear, nil
	case "hsv", "smooth":
		return ModeSmoothHSV, nil
	}
	return ModeLinear, fmt.Errorf("%q: %w", s, ErrUnknownColorMode)
}

// smoothColor colors a point that escaped after iter iterations with final
// squared modulus mod2.
func smoothColor(iter, maxIter int32, mod2 float64) RGB {
	logZn := math.Log(mod2) / 2
	nu := math.Log2(logZn / math.Ln2)
	mu := float64(iter) + 1 - nu
	hue := math.Mod(360*mu/float64(maxIter)+360, 360)

	c := hsv(hue, 1, 1)

	// low iteration counts are darker
	brightness := 0.5 + 0.5*float64(iter)/float64(maxIter)
	return RGB{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
	}
}

// hsv converts hue in degrees [0, 360), saturation and value in [0, 1].
func hsv(h, s, v float64) RGB {
	c := v * s
	hh := h / 60
	x := c * (1 - math.Abs(math.Mod(hh, 2)-1))

	var r, g, b float64
	switch {
	case hh >= 0 && hh < 1:
		r, g, b = c, x, 0
	case hh >= 1 && hh < 2:
		r, g, b = x, c, 0
	case hh >= 2 && hh < 3:
		r, g, b = 0, c, x
	case hh >= 3 && hh < 4:
		r, g, b = 0, x, c
	case hh >= 4 && hh < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}
