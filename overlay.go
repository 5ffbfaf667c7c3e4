package mandel

import (
	"fmt"
	"image"
)

// Overlay carries the values shown on top of a frame.
type Overlay struct {
	CenterReal    float64
	CenterImag    float64
	Scale         float64
	MaxIterations int32
	Mode          ColorMode

	// Selection is valid when HasSelection is set.
	Selection    image.Rectangle
	HasSelection bool
}

// Text is the single status line.
func (o Overlay) Text() string {
	return fmt.Sprintf("Center: %.10g, %.10g  Scale: %.6g  Iter: %d  Mode: %s",
		o.CenterReal, o.CenterImag, o.Scale, o.MaxIterations, o.Mode)
}
