package sidecut

var _ ProfileSegment = Line{}

// Line represents a line segment in the profile plane.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Tangents() (Vec2, Vec2) {
	d := l.P1.Sub(l.P0)
	return d, d
}

// Endpoints implements [ProfileSegment].
func (l Line) Endpoints() (Boundary, Boundary) {
	t0, t1 := l.Tangents()
	return Boundary{l.P0, t0}, Boundary{l.P1, t1}
}

// RadiusAt implements [ProfileSegment]. A line without x-extent reports the
// radius of its start point.
func (l Line) RadiusAt(x float64) float64 {
	dx := l.P1.X - l.P0.X
	if dx == 0 {
		return l.P0.Y
	}
	return l.Eval((x - l.P0.X) / dx).Y
}
