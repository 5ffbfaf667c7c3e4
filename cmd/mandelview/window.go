package main

import (
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/present"
)

// window implements ebiten.Game. It owns the pixel buffer the explorer
// renders into and converts it for display.
type window struct {
	explorer *mandel.Explorer
	rowAlign int32
	overlay  bool

	buf   *mandel.PixelBuffer
	img   *image.RGBA
	fbImg *ebiten.Image
}

func newWindow(e *mandel.Explorer, rowAlign int32) *window {
	return &window{explorer: e, rowAlign: rowAlign, overlay: true}
}

// PixelBuffer implements mandel.Surface. The buffer is reallocated when the
// window size changes.
func (w *window) PixelBuffer() *mandel.PixelBuffer {
	width, height := w.explorer.Size()
	if w.buf == nil || int(w.buf.Width) != width || int(w.buf.Height) != height {
		w.buf = mandel.NewPixelBuffer(int32(width), int32(height), w.rowAlign)
		w.img = image.NewRGBA(image.Rect(0, 0, width, height))
		if w.fbImg != nil {
			w.fbImg.Deallocate()
		}
		w.fbImg = ebiten.NewImage(max(width, 1), max(height, 1))
		w.explorer.Invalidate()
	}
	return w.buf
}

func (w *window) Update() error {
	e := w.explorer
	x, y := ebiten.CursorPosition()
	p := image.Pt(x, y)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if _, selecting := e.Selection(); selecting {
			e.CancelSelection()
		} else {
			return ebiten.Termination
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.Wheel(x, y, int(math.Round(wy*mandel.WheelNotch)))
	}

	// left button pans
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		e.BeginDrag(p)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		e.DragTo(p)
		e.EndDrag()
	case e.Dragging():
		e.DragTo(p)
	}

	// right button selects
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		e.BeginSelection(p)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight):
		e.UpdateSelection(p)
		e.CommitSelection()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		e.UpdateSelection(p)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		e.Key(mandel.KeyReset)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		e.Key(mandel.KeyMoreIterations)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		e.Key(mandel.KeyFewerIterations)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		e.Key(mandel.KeyToggleMode)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		w.overlay = !w.overlay
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	buf := w.PixelBuffer()
	if buf.Empty() {
		return
	}
	if rendered, err := w.explorer.Repaint(w); err != nil {
		log.Printf("render: %v", err)
	} else if rendered {
		log.Printf("rendered: %s", w.explorer.Overlay().Text())
	}

	present.CopyToRGBA(w.img, buf)
	if w.overlay {
		present.DrawOverlay(w.img, w.explorer.Overlay())
	}
	w.fbImg.WritePixels(w.img.Pix)
	screen.DrawImage(w.fbImg, nil)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		w.explorer.Resize(outsideWidth, outsideHeight)
	}
	width, height := w.explorer.Size()
	return max(width, 1), max(height, 1)
}
