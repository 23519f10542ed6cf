package sidecut

import (
	"fmt"
	"math"
)

// Status is the terminal state of an iterative solve.
//
// Solvers start SEEDED, move to ITERATING, and end in one of these states.
// None of them is an error: a best-effort result still carries the best
// estimate found, and callers decide whether it is good enough.
type Status int

const (
	// Converged means the residual reached the requested tolerance.
	Converged Status = iota
	// BestEffortTimeout means the iteration limit was exhausted.
	BestEffortTimeout
	// BestEffortStalled means progress became impossible, for example because
	// a secant denominator vanished.
	BestEffortStalled
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case BestEffortTimeout:
		return "best-effort (iteration limit)"
	case BestEffortStalled:
		return "best-effort (stalled)"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// RootMethod selects the algorithm used by [FindRoot].
type RootMethod int

const (
	// MethodHybrid takes secant steps, falling back to bisection whenever a
	// secant step leaves the bracket.
	MethodHybrid RootMethod = iota
	// MethodITP uses [SolveITP].
	MethodITP
)

// RootOptions configures [FindRoot]. Zero fields take their defaults.
type RootOptions struct {
	// Residual tolerance. Defaults to DefaultAccuracy.
	Tolerance float64
	// Absolute bracket width at which the search stops. Defaults to 1e-12.
	XTolerance float64
	// Iteration limit. Defaults to 100.
	MaxIter int
	Method  RootMethod
}

func (o RootOptions) withDefaults() RootOptions {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultAccuracy
	}
	if o.XTolerance == 0 {
		o.XTolerance = 1e-12
	}
	if o.MaxIter == 0 {
		o.MaxIter = 100
	}
	return o
}

// RootResult is the outcome of [FindRoot].
type RootResult struct {
	Root       float64
	Residual   float64
	Iterations int
	Status     Status
}

// FindRoot finds a zero of f in the bracket [a, b].
//
// If either endpoint already has a residual within tolerance it is returned
// immediately. Otherwise f(a) and f(b) must differ in sign, or a
// *NoBracketError is returned.
//
// With MethodHybrid, each iteration takes a secant step through the current
// bracket's endpoints, substituting the midpoint when the step leaves the
// bracket, and keeps the sub-interval that still straddles the sign change.
// The search ends when the residual is within tolerance, when the bracket
// narrows below XTolerance, or after MaxIter iterations. A collapsed bracket
// returns its better end, with status BestEffortStalled unless that end's
// residual is within tolerance. An exhausted search returns the best
// estimate found with status BestEffortTimeout.
func FindRoot(f func(float64) float64, a, b float64, opts RootOptions) (RootResult, error) {
	opts = opts.withDefaults()
	if a > b {
		a, b = b, a
	}
	fa, fb := f(a), f(b)
	if math.Abs(fa) <= opts.Tolerance {
		return RootResult{Root: a, Residual: fa, Status: Converged}, nil
	}
	if math.Abs(fb) <= opts.Tolerance {
		return RootResult{Root: b, Residual: fb, Status: Converged}, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) || math.IsNaN(fa) || math.IsNaN(fb) {
		return RootResult{}, &NoBracketError{A: a, B: b, FA: fa, FB: fb}
	}

	if opts.Method == MethodITP {
		return findRootITP(f, a, b, fa, fb, opts), nil
	}

	best := RootResult{Root: a, Residual: fa, Status: BestEffortTimeout}
	if math.Abs(fb) < math.Abs(fa) {
		best.Root, best.Residual = b, fb
	}
	for iter := 1; iter <= opts.MaxIter; iter++ {
		x := b - fb*(b-a)/(fb-fa)
		if !(x > a && x < b) {
			x = 0.5 * (a + b)
		}
		fx := f(x)
		if math.Abs(fx) < math.Abs(best.Residual) {
			best.Root, best.Residual = x, fx
		}
		best.Iterations = iter
		if math.Abs(fx) <= opts.Tolerance {
			best.Root, best.Residual, best.Status = x, fx, Converged
			return best, nil
		}
		if math.Signbit(fx) == math.Signbit(fa) {
			a, fa = x, fx
		} else {
			b, fb = x, fx
		}
		if b-a <= opts.XTolerance {
			best.Root, best.Residual = a, fa
			if math.Abs(fb) < math.Abs(fa) {
				best.Root, best.Residual = b, fb
			}
			best.Status = BestEffortStalled
			if math.Abs(best.Residual) <= opts.Tolerance {
				best.Status = Converged
			}
			return best, nil
		}
	}
	return best, nil
}

func findRootITP(f func(float64) float64, a, b, fa, fb float64, opts RootOptions) RootResult {
	// SolveITP wants f(a) < 0 < f(b).
	sign := 1.0
	if fa > 0 {
		sign = -1
	}
	var evals int
	g := func(x float64) float64 {
		evals++
		return sign * f(x)
	}
	eps := max(opts.XTolerance, (b-a)*0x1p-60)
	x := SolveITP(g, a, b, eps, 1, 0.2/(b-a), sign*fa, sign*fb)
	fx := f(x)
	// ITP stops on bracket width, which says nothing about the residual.
	var status Status
	switch {
	case math.Abs(fx) <= opts.Tolerance:
		status = Converged
	case evals >= opts.MaxIter:
		status = BestEffortTimeout
	default:
		status = BestEffortStalled
	}
	return RootResult{Root: x, Residual: fx, Iterations: evals, Status: status}
}
