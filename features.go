package sidecut

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// FeatureStats are the named landmarks of a reconstructed path.
type FeatureStats struct {
	// Widest point with x < 0.
	WidestForebody Point
	// Widest point with x >= 0.
	WidestAftbody Point
	// Narrowest point between the two widest points.
	Waist Point
	// The waist's x-coordinate.
	WaistLocation float64
	// Angle in radians between the line joining the widest points and the
	// longitudinal axis, positive when the forebody is wider.
	TaperAngle float64

	// Sample indices of the unrefined extrema.
	ForebodyIndex int
	AftbodyIndex  int
	WaistIndex    int
}

// ExtractFeatures locates the widest forebody and aftbody points and the
// waist between them in an assembled path, refining each extremum with a
// 3-point parabola, and derives the taper angle.
//
// x must be ascending. Samples with x < 0 form the forebody and the rest the
// aftbody; if either half is empty, both widest points fall back to the
// global maximum.
func ExtractFeatures(x, y []float64) (FeatureStats, error) {
	if len(x) != len(y) {
		return FeatureStats{}, fmt.Errorf("%w: %d x values, %d y values", ErrSampleMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return FeatureStats{}, fmt.Errorf("%w: empty path", ErrTooFewSamples)
	}

	split := sort.SearchFloat64s(x, 0)
	var fore, aft int
	if split == 0 || split == len(x) {
		fore = floats.MaxIdx(y)
		aft = fore
	} else {
		fore = floats.MaxIdx(y[:split])
		aft = split + floats.MaxIdx(y[split:])
	}

	lo, hi := min(fore, aft), max(fore, aft)
	var waist int
	switch {
	case hi-lo >= 2:
		waist = lo + 1 + floats.MinIdx(y[lo+1:hi])
	case y[hi] < y[lo]:
		waist = hi
	default:
		waist = lo
	}

	stats := FeatureStats{
		WidestForebody: RefineExtremum(x, y, fore),
		WidestAftbody:  RefineExtremum(x, y, aft),
		Waist:          RefineExtremum(x, y, waist),
		ForebodyIndex:  fore,
		AftbodyIndex:   aft,
		WaistIndex:     waist,
	}
	stats.WaistLocation = stats.Waist.X
	if fore != aft {
		f, a := stats.WidestForebody, stats.WidestAftbody
		stats.TaperAngle = math.Atan2(f.Y-a.Y, a.X-f.X)
	}
	return stats, nil
}

// RefineExtremum refines the discrete extremum at index i by fitting
//
//	y = A(x−x1)² + B(x−x1) + C
//
// through samples i−1, i and i+1 and returning the vertex of the parabola.
//
// The unrefined sample is returned when i is at either end of the slices,
// when the neighbours' x values (nearly) coincide, when the fit is locally
// flat, or when the vertex falls outside the three samples' x-range.
func RefineExtremum(x, y []float64, i int) Point {
	discrete := Pt(x[i], y[i])
	if i <= 0 || i >= len(x)-1 {
		return discrete
	}
	const (
		detEpsilon  = 1e-12
		flatEpsilon = 1e-12
	)
	h1, h2 := x[i-1]-x[i], x[i+1]-x[i]
	d1, d2 := y[i-1]-y[i], y[i+1]-y[i]
	det := h1 * h2 * (h1 - h2)
	scale := max(math.Abs(h1), math.Abs(h2))
	if math.Abs(det) <= detEpsilon*scale*scale*scale || det == 0 {
		return discrete
	}
	a := (d1*h2 - d2*h1) / det
	b := (h1*h1*d2 - h2*h2*d1) / det
	if math.Abs(a) < flatEpsilon {
		return discrete
	}
	s := -b / (2 * a)
	xv := x[i] + s
	if xv < x[i-1] || xv > x[i+1] || math.IsNaN(xv) {
		return discrete
	}
	return Pt(xv, y[i]+s*(b+a*s))
}
