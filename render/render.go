// Package render walks a viewport's sampling grid and paints the escape time
// of every sample onto a mandel.Display.
package render

import (
	"fmt"
	"math"
	"time"

	mandel "github.com/marben/mandel_explorer"
)

// Stats describes one finished pass.
type Stats struct {
	Samples int
	// Escaped counts samples that diverged before the cap.
	Escaped int
	Elapsed time.Duration
}

// Gray maps an escape count linearly onto 0-255. A cap of 0 or less maps
// every point to black.
func Gray(n, maxIter int) int {
	if maxIter <= 0 {
		return 0
	}
	if n > math.MaxInt/255 {
		return int(255 * (float64(n) / float64(maxIter)))
	}
	return 255 * n / maxIter
}

// Pass clears d and redraws the whole viewport. It always runs to completion.
func Pass(d mandel.Display, vp *mandel.Viewport, maxIter int) (Stats, error) {
	start := time.Now()

	d.Clear()
	d.SetScale(vp.Xmin, vp.Xmax, vp.Ymin, vp.Ymax)

	var st Stats
	for i := 0; i < vp.Samples; i++ {
		for j := 0; j < vp.Samples; j++ {
			x, y := vp.Point(i, j)
			n := mandel.Escape(mandel.Complex{Re: x, Im: y}, maxIter)
			if n < maxIter {
				st.Escaped++
			}

			v := Gray(n, maxIter)
			d.SetColor(v, v, v)
			d.FillDot(x, y, vp.MarkerRadius)
			st.Samples++
		}
	}

	if err := d.Present(); err != nil {
		return st, fmt.Errorf("present: %w", err)
	}
	st.Elapsed = time.Since(start)
	return st, nil
}
