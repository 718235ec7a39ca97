package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestCanvas_SmallDotSetsOnePixel(t *testing.T) {
	c := New(100, 100, nil)
	defer c.Close()

	c.Clear()
	c.SetScale(0, 10, 0, 10)
	c.SetColor(255, 0, 0)
	c.FillDot(5, 5, 0.01)

	img := c.Image()
	if got := rgbaAt(img, 50, 50); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (50,50) = %v, want red", got)
	}
	if got := rgbaAt(img, 51, 50); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel (51,50) = %v, want white", got)
	}
}

func TestCanvas_YGrowsUpwards(t *testing.T) {
	c := New(10, 10, nil)
	defer c.Close()

	c.Clear()
	c.SetScale(0, 10, 0, 10)
	c.SetColor(0, 0, 0)
	c.FillDot(0.5, 9.5, 0.001)

	if got := rgbaAt(c.Image(), 0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("top-left pixel = %v, want black", got)
	}
}

func TestCanvas_LargeDotIsFilled(t *testing.T) {
	c := New(100, 100, nil)
	defer c.Close()

	c.Clear()
	c.SetScale(0, 10, 0, 10)
	c.SetColor(0, 0, 255)
	c.FillDot(5, 5, 2)

	img := c.Image()
	if got := rgbaAt(img, 50, 50); got.B < 200 || got.R > 50 {
		t.Errorf("centre pixel = %v, want blue", got)
	}
	if got := rgbaAt(img, 5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want white", got)
	}
}

func TestCanvas_ClampsColor(t *testing.T) {
	c := New(4, 4, nil)
	defer c.Close()

	c.Clear()
	c.SetScale(0, 4, 0, 4)
	c.SetColor(-20, 300, 0)
	c.FillDot(1, 1, 0.001)

	if got := rgbaAt(c.Image(), 1, 3); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v, want clamped green", got)
	}
}

func TestCanvas_ToPlane(t *testing.T) {
	c := New(900, 900, nil)
	defer c.Close()
	c.SetScale(-2, 1, -1.5, 1.5)

	tests := []struct {
		px, py float64
		x, y   float64
	}{
		{0, 0, -2, 1.5},
		{900, 900, 1, -1.5},
		{600, 450, 0, 0},
	}
	for _, tt := range tests {
		x, y := c.ToPlane(tt.px, tt.py)
		if math.Abs(x-tt.x) > 1e-12 || math.Abs(y-tt.y) > 1e-12 {
			t.Errorf("ToPlane(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.x, tt.y)
		}
		px, py := c.toPixel(x, y)
		if math.Abs(px-tt.px) > 1e-9 || math.Abs(py-tt.py) > 1e-9 {
			t.Errorf("toPixel(ToPlane(%v, %v)) = (%v, %v)", tt.px, tt.py, px, py)
		}
	}
}

func TestCanvas_DegenerateScaleDoesNotDraw(t *testing.T) {
	c := New(10, 10, nil)
	defer c.Close()

	c.Clear()
	c.SetScale(1, 1, 1, 1)
	c.SetColor(0, 0, 0)
	c.FillDot(1, 1, 0.5)

	img := c.Image()
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := rgbaAt(img, x, y); got != (color.RGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) = %v on a collapsed scale", x, y, got)
			}
		}
	}
}

func TestCanvas_Present(t *testing.T) {
	var frames [][]byte
	sink := func(frame []byte) error {
		frames = append(frames, frame)
		return nil
	}

	tests := []struct {
		name  string
		opts  []Option
		wantW int
	}{
		{"full size", nil, 80},
		{"half size", []Option{WithFrameScale(0.5)}, 40},
		{"ignored scale", []Option{WithFrameScale(-1)}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames = nil
			c := New(80, 80, sink, tt.opts...)
			defer c.Close()

			c.Clear()
			if err := c.Present(); err != nil {
				t.Fatalf("Present: %v", err)
			}
			if len(frames) != 1 {
				t.Fatalf("sink got %d frames, want 1", len(frames))
			}
			img, err := png.Decode(bytes.NewReader(frames[0]))
			if err != nil {
				t.Fatalf("frame is not a PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantW {
				t.Errorf("frame %v, want %dx%d", b, tt.wantW, tt.wantW)
			}
		})
	}
}

func TestCanvas_PresentSinkError(t *testing.T) {
	boom := errors.New("boom")
	c := New(8, 8, func([]byte) error { return boom })
	defer c.Close()

	if err := c.Present(); !errors.Is(err, boom) {
		t.Errorf("Present err = %v, want %v", err, boom)
	}
}

func TestCanvas_Overlay(t *testing.T) {
	var frame []byte
	c := New(120, 40, func(f []byte) error { frame = f; return nil })
	defer c.Close()

	c.Clear()
	c.SetOverlay("MMMM")
	if err := c.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	found := false
	for y := 0; y < 16 && !found; y++ {
		for x := 0; x < 40; x++ {
			if rgbaAt(img, x, y) == overlayColor {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("overlay text not drawn")
	}

	// the surface itself stays clean
	if got := rgbaAt(c.Image(), 5, 8); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("surface pixel = %v, overlay leaked into the canvas", got)
	}
}

func TestCanvas_ImageIsDetachedCopy(t *testing.T) {
	c := New(4, 4, nil)
	defer c.Close()
	c.Clear()

	img := c.Image()
	if _, ok := img.(*image.RGBA); !ok {
		t.Errorf("Image() = %T, want the surface's own *image.RGBA copy", img)
	}
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})
	if got := rgbaAt(c.Image(), 1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("writing to a copy changed the surface: %v", got)
	}
}

func TestCanvas_Size(t *testing.T) {
	c := New(30, 20, nil)
	defer c.Close()
	if w, h := c.Size(); w != 30 || h != 20 {
		t.Errorf("Size() = %d×%d, want 30×20", w, h)
	}
}
