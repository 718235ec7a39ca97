package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coder/websocket"

	mandel "github.com/marben/mandel_explorer"
)

// clientMessage is what the browser page sends. Click positions are fractions
// of the displayed frame, so they do not depend on how the frame was scaled.
type clientMessage struct {
	Type string  `json:"type"`
	U    float64 `json:"u"`
	V    float64 `json:"v"`
	Key  string  `json:"key"`
}

var errBadMessage = errors.New("bad message")

// event converts m into an input event with click positions in canvas pixels.
func (m clientMessage) event(canvasW, canvasH int) (mandel.Event, error) {
	switch m.Type {
	case "click":
		if m.U < 0 || m.U > 1 || m.V < 0 || m.V > 1 {
			return mandel.Event{}, fmt.Errorf("%w: click (%g, %g) outside the frame", errBadMessage, m.U, m.V)
		}
		return mandel.PixelClick(m.U*float64(canvasW), m.V*float64(canvasH)), nil
	case "key":
		ev, ok := mandel.KeyEvent(m.Key)
		if !ok {
			return mandel.Event{}, fmt.Errorf("%w: unrecognized key %q", errBadMessage, m.Key)
		}
		return ev, nil
	}
	return mandel.Event{}, fmt.Errorf("%w: unknown type %q", errBadMessage, m.Type)
}

// session forwards a browser's input to the event queue and streams frames
// back to it. It never touches explorer state itself.
type session struct {
	conn   *websocket.Conn
	remote string
	events chan<- mandel.Event
	hub    *frameHub
	w, h   int
	log    *slog.Logger
}

func (s *session) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.CloseNow()

	frames, unsubscribe := s.hub.subscribe()
	defer unsubscribe()
	s.log.Info("got connection", "remote", s.remote, "clients", s.hub.subscribers())

	errc := make(chan error, 1)
	go func() {
		err := s.writeFrames(ctx, frames)
		cancel()
		errc <- err
	}()

	rerr := s.readEvents(ctx)
	cancel()
	werr := <-errc
	if rerr != nil {
		return rerr
	}
	return werr
}

func (s *session) writeFrames(ctx context.Context, frames <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-frames:
			if err := s.conn.Write(ctx, websocket.MessageBinary, f); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

func (s *session) readEvents(ctx context.Context) error {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if typ != websocket.MessageText {
			s.log.Warn("ignoring binary message", "remote", s.remote)
			continue
		}

		var m clientMessage
		if err := json.Unmarshal(data, &m); err != nil {
			s.log.Warn("ignoring malformed message", "remote", s.remote, "err", err)
			continue
		}
		ev, err := m.event(s.w, s.h)
		if err != nil {
			s.log.Warn("ignoring message", "remote", s.remote, "err", err)
			continue
		}

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// acceptSessions serves every connection l accepts until l is closed.
// Clicks are scaled to a w×h canvas.
func acceptSessions(ctx context.Context, l *WebsocketListener, events chan<- mandel.Event, hub *frameHub, w, h int, log *slog.Logger) {
	for {
		c, err := l.Accept()
		if err != nil {
			return
		}
		go func() {
			s := &session{conn: c.conn, remote: c.remote, events: events, hub: hub, w: w, h: h, log: log}
			if err := s.serve(ctx); err != nil {
				log.Warn("session ended", "remote", c.remote, "err", err)
				return
			}
			log.Info("connection closed", "remote", c.remote)
		}()
	}
}
