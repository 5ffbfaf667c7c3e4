package main

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/present"
	"github.com/marben/mandel_explorer/internal/wire"
)

// session is one browser tab. It owns its explorer and pixel buffer and
// shares nothing with other sessions.
type session struct {
	conn     *websocket.Conn
	explorer *mandel.Explorer
	buf      *mandel.PixelBuffer

	rowAlign int32
	overlay  bool
}

func newSession(c *websocket.Conn, cfg serverConfig) *session {
	return &session{
		conn:     c,
		explorer: mandel.NewExplorer(cfg.width, cfg.height),
		rowAlign: cfg.rowAlign,
		overlay:  cfg.overlay,
	}
}

// PixelBuffer implements mandel.Surface. The buffer follows the explorer size.
func (s *session) PixelBuffer() *mandel.PixelBuffer {
	w, h := s.explorer.Size()
	if s.buf == nil || int(s.buf.Width) != w || int(s.buf.Height) != h {
		s.buf = mandel.NewPixelBuffer(int32(w), int32(h), s.rowAlign)
		s.explorer.Invalidate()
	}
	return s.buf
}

// present sends a frame header followed by the PNG of the current buffer.
func (s *session) present(ctx context.Context, rendered bool, applyErr error) error {
	hdr := wire.NewFrame(s.explorer, rendered)
	if applyErr != nil {
		hdr.Error = applyErr.Error()
	}

	png, err := present.PNGBytes(present.Frame(s.buf, s.explorer.Overlay(), s.overlay))
	if err != nil {
		return err
	}

	if err := wsjson.Write(ctx, s.conn, hdr); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if err := s.conn.Write(ctx, websocket.MessageBinary, png); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// repaint renders if needed and sends the frame.
func (s *session) repaint(ctx context.Context, applyErr error) error {
	s.PixelBuffer()
	rendered, err := s.explorer.Repaint(s)
	if err != nil {
		return err
	}
	return s.present(ctx, rendered, applyErr)
}

// run serves the session until the client goes away.
// Events that arrive while a frame is being rendered are applied together
// and produce a single frame.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan wire.Event, 64)
	readErr := make(chan error, 1)
	go func() {
		defer close(events)
		for {
			var ev wire.Event
			if err := wsjson.Read(ctx, s.conn, &ev); err != nil {
				readErr <- err
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := s.repaint(ctx, nil); err != nil {
		return err
	}

	for {
		var ev wire.Event
		var ok bool
		select {
		case ev, ok = <-events:
			if !ok {
				select {
				case err := <-readErr:
					return err
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		changed, applyErr := wire.Apply(s.explorer, ev)

		// drain whatever else is queued so a burst becomes one frame
	drain:
		for {
			select {
			case next, ok := <-events:
				if !ok {
					break drain
				}
				c, err := wire.Apply(s.explorer, next)
				changed = changed || c
				if err != nil {
					applyErr = err
				}
			default:
				break drain
			}
		}

		if !changed && applyErr == nil {
			continue
		}
		if err := s.repaint(ctx, applyErr); err != nil {
			return err
		}
	}
}
