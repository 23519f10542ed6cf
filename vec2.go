package sidecut

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in the profile plane, most often a segment's
// tangent direction.
type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) String() string { return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y) }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Negate() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Hypot() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Hypot2() float64 { return v.Dot(v) }

// Slope returns dy/dx. It reports false if the vector is (numerically)
// vertical, in which case no finite slope exists.
func (v Vec2) Slope() (float64, bool) {
	const epsilon = 1e-12
	if math.Abs(v.X) <= epsilon*max(1, math.Abs(v.Y)) {
		return 0, false
	}
	return v.Y / v.X, true
}
