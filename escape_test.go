package mandel

import "testing"

func TestEscape_OriginNeverEscapes(t *testing.T) {
	for _, maxIter := range []int{0, 1, 2, 100, 12345} {
		if got := Escape(Complex{}, maxIter); got != maxIter {
			t.Errorf("Escape(0, %d) = %d, want %d", maxIter, got, maxIter)
		}
	}
}

func TestEscape_TwoEscapesAfterOneIteration(t *testing.T) {
	for _, maxIter := range []int{1, 2, 100, 5000} {
		if got := Escape(Complex{2, 0}, maxIter); got != 1 {
			t.Errorf("Escape(2, %d) = %d, want 1", maxIter, got)
		}
	}
}

func TestEscape_NonPositiveCap(t *testing.T) {
	for _, maxIter := range []int{0, -1, -100} {
		if got := Escape(Complex{0.3, 0.5}, maxIter); got != 0 {
			t.Errorf("Escape with cap %d = %d, want 0", maxIter, got)
		}
	}
}

func TestEscape_KnownPoints(t *testing.T) {
	tests := []struct {
		name string
		c    Complex
		cap  int
		want int
	}{
		// z1 = 1, z2 = 2
		{"one", Complex{1, 0}, 100, 2},
		{"minus two reaches threshold", Complex{-2, 0}, 50, 1},
		{"main cardioid", Complex{-0.5, 0}, 200, 200},
		{"period two bulb", Complex{-1, 0}, 300, 300},
		// z1 = i, z2 = -1+i, z3 = -i, z4 = -1+i ... bounded
		{"i", Complex{0, 1}, 64, 64},
		{"far away", Complex{10, 10}, 100, 1},
		{"just outside", Complex{0.5, 0}, 1000, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.c, tt.cap); got != tt.want {
				t.Errorf("Escape(%v, %d) = %d, want %d", tt.c, tt.cap, got, tt.want)
			}
		})
	}
}

func TestEscape_ResultWithinCap(t *testing.T) {
	vp := NewViewport(40)
	for i := 0; i < vp.Samples; i++ {
		for j := 0; j < vp.Samples; j++ {
			x, y := vp.Point(i, j)
			if n := Escape(Complex{x, y}, 37); n < 0 || n > 37 {
				t.Fatalf("Escape(%v, %v) = %d outside [0, 37]", x, y, n)
			}
		}
	}
}

func TestEscape_HugeInputTerminates(t *testing.T) {
	if got := Escape(Complex{1e308, 1e308}, 1000); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}
