// Package explorer binds input events to the viewport and iteration depth
// and redraws after every change.
//
// An Explorer is owned by a single goroutine. Run consumes events one at a
// time and each event's render pass completes before the next is taken.
package explorer

import (
	"context"
	"fmt"
	"log/slog"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/render"
)

// Recorder persists applied events.
type Recorder interface {
	Append(ev mandel.Event) error
}

type overlayer interface {
	SetOverlay(lines ...string)
}

type Option func(*Explorer)

func WithRecorder(r Recorder) Option {
	return func(e *Explorer) { e.rec = r }
}

// WithHUD draws the iteration cap and zoom depth over each frame when the
// display supports overlays.
func WithHUD(on bool) Option {
	return func(e *Explorer) { e.hud = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Explorer) { e.log = l }
}

type Explorer struct {
	vp      *mandel.Viewport
	depth   *mandel.Depth
	display mandel.Display
	rec     Recorder
	hud     bool
	log     *slog.Logger
}

func New(d mandel.Display, samples int, opts ...Option) *Explorer {
	e := &Explorer{
		vp:      mandel.NewViewport(samples),
		depth:   mandel.NewDepth(),
		display: d,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Viewport returns a copy of the current viewport.
func (e *Explorer) Viewport() mandel.Viewport {
	return *e.vp
}

func (e *Explorer) Cap() int {
	return e.depth.Cap()
}

// Apply performs the state change bound to ev without rendering.
// Pixel clicks are resolved through the display's Pointer; the returned event
// carries plane coordinates. ok is false for events that change nothing.
func (e *Explorer) Apply(ev mandel.Event) (resolved mandel.Event, ok bool) {
	switch ev.Kind {
	case mandel.EventClick:
		if ev.Pixel {
			p, isPointer := e.display.(mandel.Pointer)
			if !isPointer {
				return ev, false
			}
			ev.X, ev.Y = p.ToPlane(ev.X, ev.Y)
			ev.Pixel = false
		}
		e.vp.ZoomTo(ev.X, ev.Y)
		e.depth.OnZoom()
	case mandel.EventEscape:
		e.vp.Reset()
		e.depth.Reset()
	case mandel.EventDecrease:
		e.depth.Decrease()
	case mandel.EventIncrease:
		e.depth.Increase()
	default:
		return ev, false
	}
	return ev, true
}

// Dispatch applies ev, records it and redraws.
func (e *Explorer) Dispatch(ev mandel.Event) error {
	resolved, ok := e.Apply(ev)
	if !ok {
		e.log.Warn("ignoring event", "kind", ev.Kind)
		return nil
	}
	e.log.Debug("event applied", "kind", resolved.Kind, "x", resolved.X, "y", resolved.Y, "cap", e.depth.Cap())
	e.warnDegenerate()

	if e.rec != nil {
		if err := e.rec.Append(resolved); err != nil {
			e.log.Error("journal append failed", "err", err)
		}
	}
	return e.Render()
}

// Replay applies previously recorded events without recording or rendering
// them. It returns the number of events applied.
func (e *Explorer) Replay(events []mandel.Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := e.Apply(ev); ok {
			n++
		}
	}
	e.log.Info("journal replayed", "events", n, "cap", e.depth.Cap(), "zooms", e.vp.Zooms)
	e.warnDegenerate()
	return n
}

// Render runs one full pass over the current viewport.
func (e *Explorer) Render() error {
	if o, ok := e.display.(overlayer); ok && e.hud {
		o.SetOverlay(hudLines(e.vp, e.depth.Cap())...)
	}

	st, err := render.Pass(e.display, e.vp, e.depth.Cap())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	e.log.Info("frame rendered",
		"cap", e.depth.Cap(),
		"zooms", e.vp.Zooms,
		"samples", st.Samples,
		"escaped", st.Escaped,
		"elapsed", st.Elapsed)
	return nil
}

// Run draws the initial frame and then dispatches events until ctx is done
// or events is closed.
func (e *Explorer) Run(ctx context.Context, events <-chan mandel.Event) error {
	if err := e.Render(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := e.Dispatch(ev); err != nil {
				return err
			}
		}
	}
}

func (e *Explorer) warnDegenerate() {
	if e.vp.Degenerate() {
		e.log.Warn("viewport collapsed below float64 precision, press Escape to reset",
			"xmin", e.vp.Xmin, "xmax", e.vp.Xmax, "ymin", e.vp.Ymin, "ymax", e.vp.Ymax)
	}
	if e.depth.Degenerate() {
		e.log.Warn("iteration cap is zero, every point renders black", "cap", e.depth.Cap())
	}
}
