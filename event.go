package mandel

import "fmt"

type EventKind int

const (
	EventClick EventKind = iota + 1
	EventEscape
	EventDecrease
	EventIncrease
)

var eventNames = map[EventKind]string{
	EventClick:    "click",
	EventEscape:   "escape",
	EventDecrease: "decrease",
	EventIncrease: "increase",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	s, ok := eventNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown event kind %d", int(k))
	}
	return []byte(s), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is a state-changing input. X and Y carry the click position and are
// ignored for other kinds. When Pixel is set they are surface pixels that
// still have to be mapped through a Pointer.
type Event struct {
	Kind  EventKind `json:"kind"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	Pixel bool      `json:"pixel,omitempty"`
}

// Click returns a click at plane coordinates (x, y).
func Click(x, y float64) Event {
	return Event{Kind: EventClick, X: x, Y: y}
}

// PixelClick returns a click at surface pixel (px, py).
func PixelClick(px, py float64) Event {
	return Event{Kind: EventClick, X: px, Y: py, Pixel: true}
}

// KeyEvent maps a key name to its event: "Escape" resets, "1" halves the
// iteration cap and "2" doubles it.
func KeyEvent(key string) (Event, bool) {
	switch key {
	case "Escape":
		return Event{Kind: EventEscape}, true
	case "1":
		return Event{Kind: EventDecrease}, true
	case "2":
		return Event{Kind: EventIncrease}, true
	}
	return Event{}, false
}
