package sidecut

import (
	"fmt"
	"math"
)

// Dimension is the physical dimension carried by a [Quantity].
type Dimension int

const (
	Dimensionless Dimension = iota
	DimLength
	DimAngle
)

func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case DimLength:
		return "length"
	case DimAngle:
		return "angle"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Quantity is a scalar tagged with its physical dimension. Lengths are in the
// profile's length unit, angles in radians.
//
// Arithmetic between quantities of different dimensions is a programming
// error and panics with a *DimensionError; user-facing inputs are checked
// with [ConstraintSpec.Validate] before any arithmetic happens.
type Quantity struct {
	Value float64
	Dim   Dimension
}

// Length returns a length quantity.
func Length(v float64) Quantity { return Quantity{Value: v, Dim: DimLength} }

// Angle returns an angle quantity in radians.
func Angle(v float64) Quantity { return Quantity{Value: v, Dim: DimAngle} }

// Degrees returns an angle quantity given in degrees.
func Degrees(v float64) Quantity { return Angle(v * math.Pi / 180) }

func (q Quantity) String() string {
	switch q.Dim {
	case DimAngle:
		return fmt.Sprintf("%g rad", q.Value)
	case DimLength:
		return fmt.Sprintf("%g", q.Value)
	default:
		return fmt.Sprintf("%g (%s)", q.Value, q.Dim)
	}
}

func (q Quantity) mustMatch(op string, o Quantity) {
	if q.Dim != o.Dim {
		panic(&DimensionError{Op: op, Want: q.Dim, Got: o.Dim})
	}
}

// Add returns q+o.
func (q Quantity) Add(o Quantity) Quantity {
	q.mustMatch("add", o)
	return Quantity{q.Value + o.Value, q.Dim}
}

// Sub returns q−o.
func (q Quantity) Sub(o Quantity) Quantity {
	q.mustMatch("sub", o)
	return Quantity{q.Value - o.Value, q.Dim}
}

// Abs returns |q|.
func (q Quantity) Abs() Quantity {
	return Quantity{math.Abs(q.Value), q.Dim}
}

// Within reports whether |q| <= tol.
func (q Quantity) Within(tol Quantity) bool {
	q.mustMatch("compare", tol)
	return math.Abs(q.Value) <= tol.Value
}

// IsZero reports whether q equals the zero quantity of its dimension.
func (q Quantity) IsZero() bool {
	return q == Quantity{Dim: q.Dim}
}
