package sidecut

var _ ProfileSegment = CubicBez{}

// CubicBez is a cubic Bézier segment in the profile plane.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

// Endpoints implements [ProfileSegment].
func (c CubicBez) Endpoints() (Boundary, Boundary) {
	t0, t1 := c.Tangents()
	return Boundary{c.P0, t0}, Boundary{c.P3, t1}
}

// MonotonicX reports whether x(t) never reverses direction on [0, 1], which
// is required for the segment to describe a radius as a function of x.
func (c CubicBez) MonotonicX() bool {
	_, p1, p2, p3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	// x'(t) = p1 + 2 p2 t + 3 p3 t²
	return keepsSign(p1, 2*p2, 3*p3)
}

// keepsSign reports whether c0 + c1 t + c2 t² never changes sign on (0, 1).
// A zero where the polynomial only touches the axis is allowed.
func keepsSign(c0, c1, c2 float64) bool {
	roots, n := SolveQuadratic(c0, c1, c2)
	// Roots in (0, 1) split the interval; the sign is constant on each piece.
	var buf [4]float64
	ts := append(buf[:0], 0)
	for _, t := range roots[:n] {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	ts = append(ts, 1)
	var sign float64
	for i := 1; i < len(ts); i++ {
		m := 0.5 * (ts[i-1] + ts[i])
		d := c0 + m*(c1+m*c2)
		if d == 0 {
			continue
		}
		if sign != 0 && (d > 0) != (sign > 0) {
			return false
		}
		sign = d
	}
	return true
}

// RadiusAt implements [ProfileSegment]. The parameter with x(t) = x is found
// by solving the cubic x-polynomial; for segments that are not monotonic in x
// the first parameter is used.
func (c CubicBez) RadiusAt(x float64) float64 {
	p0, p1, p2, p3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	ts, n := polyRootsInUnit(p0-x, p1, p2, p3)
	if n == 0 {
		return nearestEndRadius(c.P0, c.P3, x)
	}
	t := ts[0]
	for _, u := range ts[1:n] {
		t = min(t, u)
	}
	return c.Eval(t).Y
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
