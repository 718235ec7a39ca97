// Package canvas implements mandel.Display on a software raster surface.
//
// Plane coordinates are mapped onto pixels with y growing upwards, the way a
// plotting window shows the complex plane. Each Present encodes the frame as
// PNG and hands it to a FrameSink.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	mandel "github.com/marben/mandel_explorer"
)

// FrameSink receives every presented frame as PNG bytes.
// The slice is not modified afterwards.
type FrameSink func(frame []byte) error

type Option func(*Canvas)

// WithFrameScale resizes presented frames by f. Values <= 0 are ignored.
func WithFrameScale(f float64) Option {
	return func(c *Canvas) {
		if f > 0 {
			c.frameScale = f
		}
	}
}

var (
	_ mandel.Display = (*Canvas)(nil)
	_ mandel.Pointer = (*Canvas)(nil)
)

type Canvas struct {
	dc   *gg.Context
	w, h int

	scale mandel.Region
	col   colorful.Color
	fill  gg.RGBA

	overlay    []string
	frameScale float64
	sink       FrameSink

	// first drawing error since the last Present
	err error
}

// New returns a w×h canvas scaled to mandel.DefaultRegion.
func New(w, h int, sink FrameSink, opts ...Option) *Canvas {
	c := &Canvas{
		dc:         gg.NewContext(w, h),
		w:          w,
		h:          h,
		scale:      mandel.DefaultRegion,
		frameScale: 1,
		sink:       sink,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SetColor(0, 0, 0)
	return c
}

func (c *Canvas) Close() error {
	return c.dc.Close()
}

// Size reports the surface size in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Clear paints the whole surface white.
func (c *Canvas) Clear() {
	c.dc.ClearWithColor(gg.White)
}

func (c *Canvas) SetScale(xmin, xmax, ymin, ymax float64) {
	c.scale = mandel.Region{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
}

// SetColor clamps each channel into 0-255.
func (c *Canvas) SetColor(r, g, b int) {
	c.col = colorful.Color{
		R: float64(clamp8(r)) / 255,
		G: float64(clamp8(g)) / 255,
		B: float64(clamp8(b)) / 255,
	}
	c.fill = gg.FromColor(c.col)
}

// FillDot draws a filled circle. A dot whose pixel radius is at most one
// sets the single pixel under its centre instead.
func (c *Canvas) FillDot(x, y, radius float64) {
	px, py := c.toPixel(x, y)
	if !finite(px) || !finite(py) {
		return
	}

	pr := radius / c.scale.Width() * float64(c.w)
	if !finite(pr) || pr <= 1 {
		c.dc.SetPixel(int(math.Floor(px)), int(math.Floor(py)), c.fill)
		return
	}

	c.dc.SetColor(c.col)
	c.dc.DrawCircle(px, py, pr)
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = fmt.Errorf("fill dot at (%g, %g): %w", x, y, err)
	}
}

// SetOverlay sets text lines drawn over the top-left corner of every frame.
func (c *Canvas) SetOverlay(lines ...string) {
	c.overlay = lines
}

// Image returns a copy of the surface without overlay.
func (c *Canvas) Image() draw.Image {
	img := c.dc.Image()
	if dst, ok := img.(draw.Image); ok {
		return dst
	}
	return imaging.Clone(img)
}

// Present encodes the current surface and passes it to the sink.
func (c *Canvas) Present() error {
	if err := c.err; err != nil {
		c.err = nil
		return err
	}

	frame := c.Image()
	drawOverlay(frame, c.overlay)

	var out image.Image = frame
	if c.frameScale != 1 {
		w := int(math.Round(float64(c.w) * c.frameScale))
		if w < 1 {
			w = 1
		}
		out = imaging.Resize(frame, w, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if c.sink == nil {
		return nil
	}
	return c.sink(buf.Bytes())
}

// ToPlane maps pixel (px, py) to plane coordinates under the current scale.
func (c *Canvas) ToPlane(px, py float64) (x, y float64) {
	x = c.scale.Xmin + px*c.scale.Width()/float64(c.w)
	y = c.scale.Ymax - py*c.scale.Height()/float64(c.h)
	return x, y
}

func (c *Canvas) toPixel(x, y float64) (px, py float64) {
	px = float64(c.w) * (x - c.scale.Xmin) / c.scale.Width()
	py = float64(c.h) * (c.scale.Ymax - y) / c.scale.Height()
	return px, py
}

var overlayColor = color.RGBA{R: 255, G: 140, A: 255}

func drawOverlay(dst draw.Image, lines []string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(overlayColor), Face: basicfont.Face7x13}
	for i, line := range lines {
		d.Dot = fixed.P(4, 14+i*14)
		d.DrawString(line)
	}
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
