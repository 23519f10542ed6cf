package sidecut

import "math"

// Rect is an axis-aligned rectangle with X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// BoundsOf returns the smallest rectangle enclosing all points. The zero Rect
// is returned for an empty slice.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, pt := range pts {
		r.X0, r.X1 = min(r.X0, pt.X), max(r.X1, pt.X)
		r.Y0, r.Y1 = min(r.Y0, pt.Y), max(r.Y1, pt.Y)
	}
	return r
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Inflate grows the rectangle by dx on the left and right and by dy on the
// top and bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X0 - dx, r.Y0 - dy, r.X1 + dx, r.Y1 + dy}
}
