package sidecut

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IntegralBasis is the unscaled slope and position basis of a radius profile.
//
// ThetaBase is the cumulative trapezoidal integral of the curvature K over X,
// and YBase the cumulative integral of ThetaBase. Both are referenced to
// Origin: they are zero there. Origin is x = 0 when the profile spans it and
// the first sample otherwise.
//
// Neither depends on the free constants theta0 and y0; the assembled path
// for any choice of them is available in closed form through [Slope] and
// [Position].
type IntegralBasis struct {
	X         []float64
	K         []float64
	ThetaBase []float64
	YBase     []float64
	Origin    float64
	Regions   []RegionBasis
}

// RegionBasis is the part of an [IntegralBasis] covered by one region. Its
// slices alias the full-domain slices.
type RegionBasis struct {
	Index      int
	Sign       Sign
	Start, End int

	X         []float64
	K         []float64
	ThetaBase []float64
	YBase     []float64
}

// Integrate converts the regions' radii into curvature k = 1/(radius·scale)
// and integrates it twice with the trapezoidal rule. Running totals are
// carried across region boundaries, so the composite basis is continuous in
// value and first derivative even where the curvature jumps.
//
// scale converts the profile's radius unit into the unit of x, for example
// 100 when 10 display millimetres stand for one metre of radius and x is in
// millimetres.
func Integrate(regions []Region, scale float64) (*IntegralBasis, error) {
	n := 0
	for _, r := range regions {
		if len(r.X) != len(r.Radius) {
			return nil, fmt.Errorf("region %d: %w", r.Index, ErrSampleMismatch)
		}
		n += len(r.X)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty profile", ErrTooFewSamples)
	}

	b := &IntegralBasis{
		X:         make([]float64, 0, n),
		K:         make([]float64, 0, n),
		ThetaBase: make([]float64, n),
		YBase:     make([]float64, n),
	}
	for _, r := range regions {
		start := len(b.X)
		for i, rad := range r.Radius {
			scaled := rad * scale
			if math.Abs(scaled) < RadiusEpsilon || math.IsNaN(scaled) {
				return nil, &DegenerateRadiusError{Source: "region", Index: r.Index, X: r.X[i], Radius: scaled}
			}
			b.X = append(b.X, r.X[i])
			b.K = append(b.K, 1/scaled)
		}
		b.Regions = append(b.Regions, RegionBasis{
			Index: r.Index,
			Sign:  r.Sign,
			Start: start,
			End:   len(b.X),
		})
	}

	cumulativeTrapezoid(b.ThetaBase, b.X, b.K)
	b.Origin = b.X[0]
	if b.X[0] <= 0 && b.X[n-1] >= 0 {
		b.Origin = 0
	}
	floats.AddConst(-interpolateAt(b.X, b.ThetaBase, b.Origin), b.ThetaBase)
	cumulativeTrapezoid(b.YBase, b.X, b.ThetaBase)
	floats.AddConst(-interpolateAt(b.X, b.YBase, b.Origin), b.YBase)

	for i := range b.Regions {
		rb := &b.Regions[i]
		s, e := rb.Start, rb.End
		rb.X = b.X[s:e:e]
		rb.K = b.K[s:e:e]
		rb.ThetaBase = b.ThetaBase[s:e:e]
		rb.YBase = b.YBase[s:e:e]
	}
	return b, nil
}

// cumulativeTrapezoid stores the running trapezoidal integral of f over x in
// dst, starting from zero.
func cumulativeTrapezoid(dst, x, f []float64) {
	dst[0] = 0
	for i := 1; i < len(x); i++ {
		dst[i] = dst[i-1] + (x[i]-x[i-1])*(f[i]+f[i-1])/2
	}
}

// interpolateAt linearly interpolates f at x0, which must lie within the
// range of the ascending slice x.
func interpolateAt(x, f []float64, x0 float64) float64 {
	i := sort.SearchFloat64s(x, x0)
	switch {
	case i >= len(x):
		return f[len(f)-1]
	case x[i] == x0 || i == 0:
		return f[i]
	}
	t := (x0 - x[i-1]) / (x[i] - x[i-1])
	return f[i-1] + t*(f[i]-f[i-1])
}

// Len returns the number of samples.
func (b *IntegralBasis) Len() int { return len(b.X) }

// Slope returns thetaBase + theta0 at every sample.
func (b *IntegralBasis) Slope(theta0 float64) []float64 {
	dst := slices.Clone(b.ThetaBase)
	floats.AddConst(theta0, dst)
	return dst
}

// Position returns yBase + theta0·x + y0 at every sample.
func (b *IntegralBasis) Position(theta0, y0 float64) []float64 {
	dst := make([]float64, len(b.X))
	floats.AddScaledTo(dst, b.YBase, theta0, b.X)
	floats.AddConst(y0, dst)
	return dst
}

// MeanCurvature returns the arithmetic mean of the sampled curvature.
func (b *IntegralBasis) MeanCurvature() float64 {
	return stat.Mean(b.K, nil)
}
