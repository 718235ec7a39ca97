package mandel

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// DefaultRegion is the whole set, as shown at start-up and after a reset.
var DefaultRegion = Region{
	Xmin: -2.0,
	Xmax: 1.0,
	Ymin: -1.5,
	Ymax: 1.5,
}

func (r Region) Width() float64 {
	return r.Xmax - r.Xmin
}

func (r Region) Height() float64 {
	return r.Ymax - r.Ymin
}
