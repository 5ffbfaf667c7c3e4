package mandel

import (
	"fmt"
	"image"
)

// Key is a keyboard command understood by the Explorer.
type Key uint8

const (
	KeyNone Key = iota
	KeyReset
	KeyMoreIterations
	KeyFewerIterations
	KeyToggleMode
)

// Explorer is the state of one window or render target. It turns input
// events into new viewport and parameter values and remembers whether the
// next repaint has to render.
//
// An Explorer is not safe for concurrent use. Two explorers never share
// mutable state.
type Explorer struct {
	view   Viewport
	params RenderParams

	width, height int
	dirty         bool

	dragging  bool
	dragStart image.Point
	dragView  Viewport

	selecting bool
	sel       Selection
}

// NewExplorer returns an explorer showing the default view on a width x height surface.
func NewExplorer(width, height int) *Explorer {
	return &Explorer{
		view:   ResetViewport(),
		params: DefaultParams(),
		width:  width,
		height: height,
		dirty:  true,
	}
}

// Viewport returns the current view.
func (e *Explorer) Viewport() Viewport { return e.view }

// Params returns the current render parameters.
func (e *Explorer) Params() RenderParams { return e.params }

// Size returns the surface size the explorer was last given.
func (e *Explorer) Size() (width, height int) { return e.width, e.height }

// Dirty reports whether the next Repaint renders.
func (e *Explorer) Dirty() bool { return e.dirty }

// Invalidate forces the next Repaint to render.
func (e *Explorer) Invalidate() { e.dirty = true }

// SetViewport replaces the view.
func (e *Explorer) SetViewport(v Viewport) {
	e.view = v
	e.dirty = true
}

// SetParams replaces the render parameters.
func (e *Explorer) SetParams(p RenderParams) {
	e.params = p
	e.dirty = true
}

// Resize records the new surface size. The scale is kept.
func (e *Explorer) Resize(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.selecting = false
	e.dirty = true
}

// Wheel zooms around pixel (px, py). Positive delta zooms in.
func (e *Explorer) Wheel(px, py, delta int) {
	if delta == 0 {
		return
	}
	e.view = e.view.ZoomAroundPixel(float64(px), float64(py), e.width, e.height, WheelZoomFactor(delta))
	e.dirty = true
}

// BeginDrag starts panning at p.
func (e *Explorer) BeginDrag(p image.Point) {
	e.dragging = true
	e.dragStart = p
	e.dragView = e.view
}

// DragTo pans so the point grabbed at BeginDrag follows p.
func (e *Explorer) DragTo(p image.Point) {
	if !e.dragging {
		return
	}
	d := p.Sub(e.dragStart)
	e.view = e.dragView.PanByPixelDelta(float64(d.X), float64(d.Y))
	e.dirty = true
}

// EndDrag stops panning.
func (e *Explorer) EndDrag() {
	e.dragging = false
}

// Dragging reports whether a pan is in progress.
func (e *Explorer) Dragging() bool { return e.dragging }

// BeginSelection starts a rubber band selection at p.
func (e *Explorer) BeginSelection(p image.Point) {
	e.selecting = true
	e.sel = NewSelection(p, e.width, e.height)
}

// UpdateSelection moves the dragged corner of the selection.
func (e *Explorer) UpdateSelection(p image.Point) {
	if !e.selecting {
		return
	}
	e.sel = e.sel.Update(p)
}

// Selection returns the selection in progress, if any.
func (e *Explorer) Selection() (Selection, bool) {
	return e.sel, e.selecting
}

// CancelSelection discards the selection.
func (e *Explorer) CancelSelection() {
	e.selecting = false
}

// CommitSelection zooms into the selection and ends it. Degenerate
// selections are discarded and leave the view unchanged.
func (e *Explorer) CommitSelection() bool {
	if !e.selecting {
		return false
	}
	e.selecting = false

	v, err := e.sel.Frame(e.view)
	if err != nil {
		return false
	}
	e.view = v
	e.dirty = true
	return true
}

// ApplySelectionTo frames the current selection onto dst, keeping the
// selected world width across dst's own surface size. Values are copied;
// the selection of e stays in place.
func (e *Explorer) ApplySelectionTo(dst *Explorer) bool {
	if !e.selecting || dst == nil || dst == e {
		return false
	}
	v, err := e.sel.Frame(e.view)
	if err != nil {
		return false
	}
	if dst.width > 0 && e.width > 0 {
		v.Scale = v.Scale * float64(e.width) / float64(dst.width)
	}
	dst.view = v
	dst.params = e.params
	dst.dirty = true
	return true
}

// Key handles a keyboard command.
func (e *Explorer) Key(k Key) {
	switch k {
	case KeyReset:
		e.view = ResetViewport()
	case KeyMoreIterations:
		e.params = e.params.WithMaxIterations(MoreIterations(e.params.MaxIterations))
	case KeyFewerIterations:
		e.params = e.params.WithMaxIterations(FewerIterations(e.params.MaxIterations))
	case KeyToggleMode:
		e.params.Mode = e.params.Mode.Next()
	default:
		return
	}
	e.dirty = true
}

// Properties returns the editable form of the current state.
func (e *Explorer) Properties() Properties {
	return PropertiesOf(e.view, e.params, e.height)
}

// ApplyProperties replaces the state from the form. On error nothing changes.
func (e *Explorer) ApplyProperties(pr Properties) error {
	v, p, err := pr.Apply(e.height)
	if err != nil {
		return fmt.Errorf("apply properties: %w", err)
	}
	e.view, e.params = v, p
	e.dirty = true
	return nil
}

// Overlay returns the values to display on top of the frame.
func (e *Explorer) Overlay() Overlay {
	ov := Overlay{
		CenterReal:    e.view.CenterReal,
		CenterImag:    e.view.CenterImag,
		Scale:         e.view.Scale,
		MaxIterations: e.params.MaxIterations,
		Mode:          e.params.Mode,
	}
	if e.selecting {
		ov.Selection = e.sel.Rect()
		ov.HasSelection = true
	}
	return ov
}

// Repaint renders into the surface's buffer if the state changed since the
// last repaint. It reports whether it rendered.
func (e *Explorer) Repaint(s Surface) (bool, error) {
	if !e.dirty {
		return false, nil
	}
	buf := s.PixelBuffer()
	if err := Render(e.view, e.params, buf); err != nil {
		return false, err
	}
	e.dirty = false
	return true, nil
}

// PixelBuffer lets a bare buffer act as its own Surface.
func (b *PixelBuffer) PixelBuffer() *PixelBuffer { return b }
