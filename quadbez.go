package sidecut

var _ ProfileSegment = QuadBez{}

// QuadBez is a quadratic Bézier segment in the profile plane.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := q.P1.Sub(q.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d0 = q.P2.Sub(q.P0)
	}
	d12 := q.P2.Sub(q.P1)
	if d12.Hypot2() > epsilon {
		d1 = d12
	} else {
		d1 = q.P2.Sub(q.P0)
	}
	return d0, d1
}

// Endpoints implements [ProfileSegment].
func (q QuadBez) Endpoints() (Boundary, Boundary) {
	t0, t1 := q.Tangents()
	return Boundary{q.P0, t0}, Boundary{q.P2, t1}
}

// xCoefficients returns the polynomial coefficients of x(t).
func (q QuadBez) xCoefficients() (_, _, _ float64) {
	return q.P0.X, 2.0 * (q.P1.X - q.P0.X), q.P0.X - 2.0*q.P1.X + q.P2.X
}

// MonotonicX reports whether x(t) never reverses direction on [0, 1], which
// is required for the segment to describe a radius as a function of x.
func (q QuadBez) MonotonicX() bool {
	_, c1, c2 := q.xCoefficients()
	// x'(t) = c1 + 2 c2 t
	return keepsSign(c1, 2*c2, 0)
}

// RadiusAt implements [ProfileSegment]. The parameter with x(t) = x is found
// by solving the quadratic x-polynomial.
func (q QuadBez) RadiusAt(x float64) float64 {
	c0, c1, c2 := q.xCoefficients()
	ts, n := polyRootsInUnit(c0-x, c1, c2, 0)
	if n == 0 {
		return nearestEndRadius(q.P0, q.P2, x)
	}
	return q.Eval(ts[0]).Y
}

// nearestEndRadius returns the radius of whichever endpoint is closer to x
// along the independent axis.
func nearestEndRadius(p0, p1 Point, x float64) float64 {
	if abs(x-p0.X) <= abs(x-p1.X) {
		return p0.Y
	}
	return p1.Y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
