package mandel

import (
	"fmt"
	"math"
)

// Complex is an immutable complex number. Every operation returns a new value.
// Non-finite results are not guarded against; see IsFinite.
type Complex struct {
	Re, Im float64
}

func (p Complex) Add(q Complex) Complex {
	return Complex{p.Re + q.Re, p.Im + q.Im}
}

func (p Complex) Mul(q Complex) Complex {
	return Complex{p.Re*q.Re - p.Im*q.Im, p.Im*q.Re + p.Re*q.Im}
}

// Abs returns the magnitude |p|.
func (p Complex) Abs() float64 {
	return math.Sqrt(p.Re*p.Re + p.Im*p.Im)
}

// Arg returns the angle of p in radians, in [-Pi, Pi].
func (p Complex) Arg() float64 {
	return math.Atan2(p.Im, p.Re)
}

func (p Complex) Conj() Complex {
	return Complex{p.Re, -p.Im}
}

// Div returns p/q. Dividing by zero yields non-finite components.
func (p Complex) Div(q Complex) Complex {
	qc := q.Conj()
	num := p.Mul(qc)
	den := q.Mul(qc) // real, equals |q|²
	return Complex{num.Re / den.Re, num.Im / den.Re}
}

// IsFinite reports whether neither component is NaN or infinite.
func (p Complex) IsFinite() bool {
	return !math.IsNaN(p.Re) && !math.IsInf(p.Re, 0) &&
		!math.IsNaN(p.Im) && !math.IsInf(p.Im, 0)
}

func (p Complex) String() string {
	return fmt.Sprintf("%g + %gi", p.Re, p.Im)
}
