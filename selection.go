package mandel

import (
	"image"
	"math"
)

// MinSelectionPixels is the smallest selection side that is committed.
const MinSelectionPixels = 4

// Selection is a rubber band rectangle dragged over a width x height view.
// Its rectangle keeps the aspect ratio of the view so framing it does not
// distort the image.
type Selection struct {
	Start   image.Point
	Current image.Point

	width, height int
}

// NewSelection starts a selection at p over a width x height view.
func NewSelection(p image.Point, width, height int) Selection {
	return Selection{Start: p, Current: p, width: width, height: height}
}

// Update moves the dragged corner.
func (s Selection) Update(p image.Point) Selection {
	s.Current = p
	return s
}

// Rect returns the aspect-locked rectangle anchored at Start and growing
// towards Current.
func (s Selection) Rect() image.Rectangle {
	if s.width <= 0 || s.height <= 0 {
		return image.Rectangle{Min: s.Start, Max: s.Start}
	}
	dx := s.Current.X - s.Start.X
	dy := s.Current.Y - s.Start.Y

	aspect := float64(s.width) / float64(s.height)
	w := math.Max(math.Abs(float64(dx)), math.Abs(float64(dy))*aspect)
	h := w / aspect

	rw := int(math.Round(w))
	rh := int(math.Round(h))

	r := image.Rectangle{Min: s.Start, Max: s.Start.Add(image.Pt(rw, rh))}
	if dx < 0 {
		r.Min.X, r.Max.X = s.Start.X-rw, s.Start.X
	}
	if dy < 0 {
		r.Min.Y, r.Max.Y = s.Start.Y-rh, s.Start.Y
	}
	return r
}

// Degenerate reports whether the selection is too small to frame.
func (s Selection) Degenerate() bool {
	r := s.Rect()
	return r.Dx() < MinSelectionPixels || r.Dy() < MinSelectionPixels
}

// Frame returns v framed onto the selection. It fails for degenerate selections.
func (s Selection) Frame(v Viewport) (Viewport, error) {
	if s.Degenerate() {
		return v, ErrDegenerateRect
	}
	return v.FrameToPixelRect(s.Rect(), s.width, s.height)
}
