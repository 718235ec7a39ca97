package mandel

import "math"

const (
	// DefaultCap is the iteration cap at start-up and after a reset.
	DefaultCap = 100

	zoomCapBonus = 120
)

// Depth controls the iteration cap. No floor is enforced: halving can
// reach 0, which renders every point black. Growth saturates at
// math.MaxInt instead of wrapping negative.
type Depth struct {
	maxIter int
}

func NewDepth() *Depth {
	return &Depth{maxIter: DefaultCap}
}

func (d *Depth) Cap() int {
	return d.maxIter
}

// Increase doubles the cap.
func (d *Depth) Increase() {
	if d.maxIter > math.MaxInt/2 {
		d.maxIter = math.MaxInt
		return
	}
	d.maxIter *= 2
}

// Decrease halves the cap, rounding down.
func (d *Depth) Decrease() {
	d.maxIter /= 2
}

// OnZoom raises the cap after a successful zoom.
func (d *Depth) OnZoom() {
	if d.maxIter > math.MaxInt-zoomCapBonus {
		d.maxIter = math.MaxInt
		return
	}
	d.maxIter += zoomCapBonus
}

func (d *Depth) Reset() {
	d.maxIter = DefaultCap
}

// Degenerate reports whether the cap is too small to tell points apart.
func (d *Depth) Degenerate() bool {
	return d.maxIter <= 0
}
