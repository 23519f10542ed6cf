package sidecut

import (
	"math"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	const epsilon = 1e-12
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveCubic(t *testing.T) {
	slice := func(roots [3]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveCubic(-5, 0, 0, 1)), []float64{math.Cbrt(5)})
	checkRoots(t, slice(SolveCubic(-5.0, -1.0, 0.0, 1.0)), []float64{1.90416085913492})
	checkRoots(t, slice(SolveCubic(0.0, -1.0, 0.0, 1.0)), []float64{-1.0, 0.0, 1.0})
	checkRoots(t, slice(SolveCubic(-2.0, -3.0, 0.0, 1.0)), []float64{-1.0, 2.0})
	checkRoots(t, slice(SolveCubic(2.0, -3.0, 0.0, 1.0)), []float64{-2.0, 1.0})
	checkRoots(t, slice(SolveCubic(2.0+1e-12, 5.0, 4.0, 1.0)), []float64{-2.0})
	// Falls back to the quadratic.
	checkRoots(t, slice(SolveCubic(-4, 0, 1, 0)), []float64{-2, 2})
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
	checkRoots(t, slice(SolveQuadratic(1, 0, 0)), []float64{})
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := SolveITP(f, 1.0, 2.0, 1e-12, 0, 0.2, f(1.0), f(2.0))
	if n := math.Abs(f(x)); n > 6e-12 {
		t.Errorf("%v > 6e-12", n)
	}
}

func TestPolyRootsInUnit(t *testing.T) {
	slice := func(roots [3]float64, n int) []float64 {
		return roots[:n]
	}
	// (t - 0.25)(t - 0.5)(t - 4)
	checkRoots(t, slice(polyRootsInUnit(-0.5, 3.125, -4.75, 1)), []float64{0.25, 0.5})
	// Linear once the negligible leading terms are dropped.
	checkRoots(t, slice(polyRootsInUnit(-0.3, 1, 1e-15, 1e-16)), []float64{0.3})
	// Roots just outside the interval are clamped onto it.
	checkRoots(t, slice(polyRootsInUnit(1e-11, 1, 0, 0)), []float64{0})
	checkRoots(t, slice(polyRootsInUnit(2, 1, 0, 0)), []float64{})
}
