// Package wire defines the JSON messages exchanged between the browser
// explorer page and the server, and applies input events to an Explorer.
package wire

import (
	"errors"
	"fmt"
	"image"

	mandel "github.com/marben/mandel_explorer"
)

// Event types sent by the client.
const (
	EventResize      = "resize"
	EventWheel       = "wheel"
	EventDragStart   = "drag-start"
	EventDragMove    = "drag-move"
	EventDragEnd     = "drag-end"
	EventSelectStart = "select-start"
	EventSelectMove  = "select-move"
	EventSelectEnd   = "select-end"
	EventSelectAbort = "select-cancel"
	EventKey         = "key"
	EventProperties  = "properties"
	EventRegion      = "region"
)

// Largest surface a client may request.
const (
	MaxWidth  = 4096
	MaxHeight = 4096
)

// ErrUnknownEvent is returned by Apply for unsupported event types.
var ErrUnknownEvent = errors.New("unknown event")

// Event is one input event.
type Event struct {
	Type   string `json:"type"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Delta  int    `json:"delta,omitempty"`
	Key    string `json:"key,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Region string `json:"region,omitempty"`

	Properties *Properties `json:"properties,omitempty"`
}

// Properties mirrors mandel.Properties with the ramp bounds as plain
// integers, the way the form fields submit them.
type Properties struct {
	MaxIterations int32   `json:"maxIterations"`
	CenterReal    float64 `json:"centerReal"`
	CenterImag    float64 `json:"centerImag"`
	Height        float64 `json:"height"`
	RedMin        int     `json:"redMin"`
	RedMax        int     `json:"redMax"`
	GreenMin      int     `json:"greenMin"`
	GreenMax      int     `json:"greenMax"`
	BlueMin       int     `json:"blueMin"`
	BlueMax       int     `json:"blueMax"`
	Mode          string  `json:"mode"`
}

// ErrRampBound is returned by Properties.Core for ramp bounds outside a byte.
var ErrRampBound = errors.New("ramp bound out of range 0..255")

// FromProperties fills the form from the core value.
func FromProperties(p mandel.Properties) Properties {
	return Properties{
		MaxIterations: p.MaxIterations,
		CenterReal:    p.CenterReal,
		CenterImag:    p.CenterImag,
		Height:        p.Height,
		RedMin:        int(p.Ramp.RedMin),
		RedMax:        int(p.Ramp.RedMax),
		GreenMin:      int(p.Ramp.GreenMin),
		GreenMax:      int(p.Ramp.GreenMax),
		BlueMin:       int(p.Ramp.BlueMin),
		BlueMax:       int(p.Ramp.BlueMax),
		Mode:          p.Mode.String(),
	}
}

// Core validates the ramp bounds and the mode name and returns the core value.
func (p Properties) Core() (mandel.Properties, error) {
	bounds := []int{p.RedMin, p.RedMax, p.GreenMin, p.GreenMax, p.BlueMin, p.BlueMax}
	for _, b := range bounds {
		if b < 0 || b > 255 {
			return mandel.Properties{}, fmt.Errorf("%d: %w", b, ErrRampBound)
		}
	}
	mode, err := mandel.ParseColorMode(p.Mode)
	if err != nil {
		return mandel.Properties{}, err
	}
	return mandel.Properties{
		MaxIterations: p.MaxIterations,
		CenterReal:    p.CenterReal,
		CenterImag:    p.CenterImag,
		Height:        p.Height,
		Ramp: mandel.ColorRamp{
			RedMin: uint8(p.RedMin), RedMax: uint8(p.RedMax),
			GreenMin: uint8(p.GreenMin), GreenMax: uint8(p.GreenMax),
			BlueMin: uint8(p.BlueMin), BlueMax: uint8(p.BlueMax),
		},
		Mode: mode,
	}, nil
}

// Frame is the header sent before each binary PNG message.
type Frame struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Rendered   bool       `json:"rendered"`
	Status     string     `json:"status"`
	Properties Properties `json:"properties"`
	Error      string     `json:"error,omitempty"`
}

// NewFrame describes the current state of e.
func NewFrame(e *mandel.Explorer, rendered bool) Frame {
	w, h := e.Size()
	return Frame{
		Width:      w,
		Height:     h,
		Rendered:   rendered,
		Status:     e.Overlay().Text(),
		Properties: FromProperties(e.Properties()),
	}
}

// Keys understood in key events.
var keys = map[string]mandel.Key{
	"r": mandel.KeyReset,
	"R": mandel.KeyReset,
	"+": mandel.KeyMoreIterations,
	"=": mandel.KeyMoreIterations,
	"-": mandel.KeyFewerIterations,
	"_": mandel.KeyFewerIterations,
	"m": mandel.KeyToggleMode,
	"M": mandel.KeyToggleMode,
}

// Apply feeds ev into e. It reports whether the displayed frame changed,
// either because the view must be rendered again or because the overlay moved.
func Apply(e *mandel.Explorer, ev Event) (bool, error) {
	p := image.Pt(ev.X, ev.Y)

	switch ev.Type {
	case EventResize:
		if ev.Width <= 0 || ev.Height <= 0 || ev.Width > MaxWidth || ev.Height > MaxHeight {
			return false, fmt.Errorf("resize %dx%d: size out of range", ev.Width, ev.Height)
		}
		e.Resize(ev.Width, ev.Height)
	case EventWheel:
		e.Wheel(ev.X, ev.Y, ev.Delta)
	case EventDragStart:
		e.BeginDrag(p)
		return false, nil
	case EventDragMove:
		e.DragTo(p)
	case EventDragEnd:
		e.DragTo(p)
		e.EndDrag()
	case EventSelectStart:
		e.BeginSelection(p)
	case EventSelectMove:
		e.UpdateSelection(p)
	case EventSelectEnd:
		e.UpdateSelection(p)
		e.CommitSelection()
	case EventSelectAbort:
		e.CancelSelection()
	case EventKey:
		k, ok := keys[ev.Key]
		if !ok {
			return false, nil
		}
		e.Key(k)
	case EventProperties:
		if ev.Properties == nil {
			return false, errors.New("properties event without properties")
		}
		props, err := ev.Properties.Core()
		if err != nil {
			return false, err
		}
		if err := e.ApplyProperties(props); err != nil {
			return false, err
		}
	case EventRegion:
		r, err := mandel.LookupRegion(ev.Region)
		if err != nil {
			return false, err
		}
		w, h := e.Size()
		e.SetViewport(r.Viewport(w, h))
	default:
		return false, fmt.Errorf("%q: %w", ev.Type, ErrUnknownEvent)
	}
	return true, nil
}
