package main

import "sync"

// frameHub fans presented frames out to every connected session. A slow
// session only ever holds the newest frame; older ones are dropped.
type frameHub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
	last []byte
}

func newFrameHub() *frameHub {
	return &frameHub{subs: make(map[chan []byte]struct{})}
}

// publish implements canvas.FrameSink.
func (h *frameHub) publish(frame []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = frame
	for ch := range h.subs {
		offer(ch, frame)
	}
	return nil
}

// subscribe returns a channel primed with the latest frame, if any.
func (h *frameHub) subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	if h.last != nil {
		ch <- h.last
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *frameHub) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func offer(ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
		return
	default:
	}
	// replace the stale frame
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}
