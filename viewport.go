package mandel

import "math"

const (
	// DefaultSamples is the number of samples along each axis of a render.
	DefaultSamples = 1000
	// DefaultMarkerRadius is the dot radius used for the default region.
	DefaultMarkerRadius = 0.001

	zoomFactor  = 10.0
	markerScale = 0.01
)

// Viewport is the visible rectangle of the complex plane together with the
// sampling grid laid over it. It is changed only by ZoomTo and Reset.
type Viewport struct {
	Region

	// Samples per axis. Constant for the lifetime of the viewport.
	Samples      int
	MarkerRadius float64

	// Zooms counts ZoomTo calls since the last Reset.
	Zooms int
}

// NewViewport returns a viewport showing DefaultRegion.
// samples <= 0 selects DefaultSamples.
func NewViewport(samples int) *Viewport {
	if samples <= 0 {
		samples = DefaultSamples
	}
	v := &Viewport{Samples: samples}
	v.Reset()
	return v
}

func (v *Viewport) Reset() {
	v.Region = DefaultRegion
	v.MarkerRadius = DefaultMarkerRadius
	v.Zooms = 0
}

// ZoomTo centres a square window on (cx, cy) whose side is a fifth of the
// current width. Only the x extent is used, so any aspect ratio is dropped.
func (v *Viewport) ZoomTo(cx, cy float64) {
	half := (v.Xmax - v.Xmin) / zoomFactor
	v.Xmin = cx - half
	v.Xmax = cx + half
	v.Ymin = cy - half
	v.Ymax = cy + half
	v.MarkerRadius = markerScale * (v.Xmax - v.Xmin) / float64(v.Samples)
	v.Zooms++
}

// Steps returns the distance between neighbouring samples on each axis.
func (v *Viewport) Steps() (dx, dy float64) {
	n := float64(v.Samples)
	return (v.Xmax - v.Xmin) / n, (v.Ymax - v.Ymin) / n
}

// Point returns the plane coordinate of grid sample (i, j).
func (v *Viewport) Point(i, j int) (x, y float64) {
	dx, dy := v.Steps()
	return v.Xmin + float64(i)*dx, v.Ymin + float64(j)*dy
}

// Degenerate reports whether the viewport has collapsed: an extent that is
// not strictly positive, non-finite bounds, or a step that underflowed to 0.
// Repeated zooming ends here once the half width drops below the precision
// of the centre coordinate.
func (v *Viewport) Degenerate() bool {
	for _, f := range []float64{v.Xmin, v.Xmax, v.Ymin, v.Ymax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	if !(v.Xmax > v.Xmin) || !(v.Ymax > v.Ymin) {
		return true
	}
	dx, dy := v.Steps()
	return dx == 0 || dy == 0
}
