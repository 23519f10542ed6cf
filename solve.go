package sidecut

import "math"

// DefaultAccuracy is a default value for functions that take an accuracy
// argument.
const DefaultAccuracy = 1e-6

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// If the equation is nearly linear, the root of the linear part is returned;
// the other root might be out of representable range. In the degenerate case
// where all coefficients are zero, a single 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0.0 && c1 == 0.0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the other
		// as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// SolveCubic finds real roots of cubic equations.
//
// See: https://momentsingraphics.de/CubicRoots.html, which is in turn based on
// Jim Blinn's "How to Solve a Cubic Equation".
//
// Returns values of x for which c0 + c1 x + c2 x² + c3 x³ = 0.0
//
// The second return value states how many roots were found. When c3 is zero
// (or nearly so) the quadratic is solved instead.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) {
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is called "Delta" in the article
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	// d is called "Discriminant"
	d := 4.0*d0*d2 - d1*d1
	// de is called "Depressed.x", Depressed.y = d0
	de := math.FMA(-2.0*c2, d0, d1)
	switch {
	case d < 0.0:
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t1 - c2}, 1
	case d == 0.0:
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t1 - c2, -2.0*t1 - c2}, 2
	default:
		th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
		thSin, thCos := math.Sincos(th)
		r0 := thCos
		ss3 := thSin * math.Sqrt(3.0)
		r1 := 0.5 * (-thCos + ss3)
		r2 := 0.5 * (-thCos - ss3)
		t := 2.0 * math.Sqrt(-d0)
		return [3]float64{
			math.FMA(t, r0, -c2),
			math.FMA(t, r1, -c2),
			math.FMA(t, r2, -c2),
		}, 3
	}
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the [ITP method], as described in the paper [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// The values of ya and yb are given as arguments rather than computed from f,
// as they are usually known already. It is assumed that ya < 0.0 and
// yb > 0.0, otherwise unexpected results may occur.
//
// The value of epsilon must be larger than 2**-63 * (b - a), otherwise integer
// overflow may occur. k2 is hardwired to 2.
//
// The n0 parameter controls the relative impact of the bisection and secant
// components. When it is 0, the number of iterations is guaranteed to be no
// more than the number required by bisection. A value of 1 gives the secant
// method more of a chance to engage on smooth functions. A value of 0.2 / (b -
// a) for k1 matches the paper.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

// polyRootsInUnit returns the roots of c0 + c1 t + c2 t² + c3 t³ that lie in
// [0, 1], clamping roots within epsilon of the interval.
//
// Leading coefficients that are negligible relative to the others are
// dropped before solving, and each root is polished with Newton steps.
func polyRootsInUnit(c0, c1, c2, c3 float64) ([3]float64, int) {
	const epsilon = 1e-9
	const negligible = 1e-12
	scale := abs(c1) + abs(c2) + abs(c3)
	if abs(c3) <= negligible*scale {
		c3 = 0
		if abs(c2) <= negligible*scale {
			c2 = 0
		}
	}
	roots, n := SolveCubic(c0, c1, c2, c3)
	var out [3]float64
	var outN int
	for _, t := range roots[:n] {
		if !(t >= -epsilon && t <= 1+epsilon) {
			continue
		}
		for range 3 {
			f := c0 + t*(c1+t*(c2+t*c3))
			df := c1 + t*(2*c2+t*3*c3)
			if df == 0 {
				break
			}
			t -= f / df
		}
		out[outN] = min(max(t, 0), 1)
		outN++
	}
	return out, outN
}
