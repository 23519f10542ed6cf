package sidecut

import (
	"fmt"
	"math"
)

// Point is a location in the profile plane.
//
// For radius profiles, X is the independent (longitudinal) coordinate and Y is
// the signed radius at that coordinate. For reconstructed paths, Y is the
// lateral position.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) String() string { return fmt.Sprintf("(%g, %g)", pt.X, pt.Y) }

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 { return Vec2{pt.X - o.X, pt.Y - o.Y} }

// Lerp returns the point a fraction t of the way from pt to o.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point{pt.X + t*(o.X-pt.X), pt.Y + t*(o.Y-pt.Y)}
}

// Transform applies aff to pt.
func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

func (pt Point) IsInf() bool { return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) }
func (pt Point) IsNaN() bool { return math.IsNaN(pt.X) || math.IsNaN(pt.Y) }

// Points zips parallel coordinate slices into points. It panics if the slices
// differ in length.
func Points(x, y []float64) []Point {
	if len(x) != len(y) {
		panic(fmt.Sprintf("coordinate slices differ in length: %d vs %d", len(x), len(y)))
	}
	out := make([]Point, len(x))
	for i := range x {
		out[i] = Point{x[i], y[i]}
	}
	return out
}
