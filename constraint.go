package sidecut

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
)

// ConstraintKind selects the global property of the path that [Solve]
// drives to a target.
type ConstraintKind int

const (
	// WaistLocation constrains the x-coordinate of the waist.
	WaistLocation ConstraintKind = iota + 1
	// TaperAngle constrains the angle between the widest points.
	TaperAngle
)

func (k ConstraintKind) String() string {
	switch k {
	case WaistLocation:
		return "waist-location"
	case TaperAngle:
		return "taper-angle"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}
}

// Dimension returns the dimension of the constrained property.
func (k ConstraintKind) Dimension() Dimension {
	switch k {
	case WaistLocation:
		return DimLength
	case TaperAngle:
		return DimAngle
	default:
		return Dimensionless
	}
}

func (k ConstraintKind) measure(f FeatureStats) float64 {
	switch k {
	case WaistLocation:
		return f.WaistLocation
	case TaperAngle:
		return f.TaperAngle
	default:
		panic("unreachable")
	}
}

// ConstraintSpec is the single global constraint the reconstruction must
// satisfy.
type ConstraintSpec struct {
	Kind      ConstraintKind
	Target    Quantity
	Tolerance Quantity
	MaxIter   int
}

// Validate checks that the target and tolerance carry the dimension of the
// constrained property and that the tolerance and iteration limit are
// positive.
func (c ConstraintSpec) Validate() error {
	want := c.Kind.Dimension()
	if want == Dimensionless {
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidConstraint, c.Kind)
	}
	if c.Target.Dim != want {
		return &DimensionError{Op: fmt.Sprintf("%s target", c.Kind), Want: want, Got: c.Target.Dim}
	}
	if c.Tolerance.Dim != want {
		return &DimensionError{Op: fmt.Sprintf("%s tolerance", c.Kind), Want: want, Got: c.Tolerance.Dim}
	}
	if !(c.Tolerance.Value > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %s", ErrInvalidConstraint, c.Tolerance)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConstraint, c.MaxIter)
	}
	if math.IsNaN(c.Target.Value) || math.IsInf(c.Target.Value, 0) {
		return fmt.Errorf("%w: target must be finite, got %s", ErrInvalidConstraint, c.Target)
	}
	return nil
}

// Anchor selects how the vertical offset y0 is fixed once theta0 is known.
type Anchor int

const (
	// AnchorOrigin places the path at the anchor value at the basis origin.
	AnchorOrigin Anchor = iota
	// AnchorWaist places the waist at the anchor value.
	AnchorWaist
)

func (a Anchor) String() string {
	switch a {
	case AnchorOrigin:
		return "origin"
	case AnchorWaist:
		return "waist"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

const machineEpsilon = 0x1p-52

type solveConfig struct {
	logger          *zap.Logger
	bracketFallback bool
	anchor          Anchor
	anchorValue     float64
}

// A SolveOption configures [Solve].
type SolveOption func(*solveConfig)

// WithLogger makes Solve trace its iterations to l at debug level.
func WithLogger(l *zap.Logger) SolveOption {
	return func(c *solveConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBracketFallback enables polishing a non-converged secant result with
// [FindRoot] whenever two successive iterates straddled the target. The
// polish has its own iteration budget, the FindRoot default.
func WithBracketFallback(enabled bool) SolveOption {
	return func(c *solveConfig) { c.bracketFallback = enabled }
}

// WithAnchor chooses how y0 is derived after theta0 has been found.
func WithAnchor(a Anchor, value float64) SolveOption {
	return func(c *solveConfig) {
		c.anchor = a
		c.anchorValue = value
	}
}

// SolveResult is a reconstructed path together with its features and the
// solver's convergence metadata.
type SolveResult struct {
	Theta0 float64
	Y0     float64
	X      []float64
	Y      []float64

	Features FeatureStats

	Status     Status
	Iterations int
	// Property minus target at Theta0, in the constraint's dimension.
	Residual Quantity

	Basis *IntegralBasis
}

// Converged reports whether the constraint was met within tolerance.
func (r *SolveResult) Converged() bool { return r.Status == Converged }

// Points returns the path as points.
func (r *SolveResult) Points() []Point { return Points(r.X, r.Y) }

// Slope returns the path's slope at every sample.
func (r *SolveResult) Slope() []float64 { return r.Basis.Slope(r.Theta0) }

// RegionSection is the part of a solved path covered by one region, for
// callers that fit one curve per region.
type RegionSection struct {
	Index  int
	Sign   Sign
	X      []float64
	Y      []float64
	Theta0 float64
	Y0     float64
}

// Points returns the section as points.
func (s RegionSection) Points() []Point { return Points(s.X, s.Y) }

// Sections splits the path by region. The returned slices alias r.X and r.Y.
func (r *SolveResult) Sections() []RegionSection {
	out := make([]RegionSection, len(r.Basis.Regions))
	for i, rb := range r.Basis.Regions {
		s, e := rb.Start, rb.End
		out[i] = RegionSection{
			Index:  rb.Index,
			Sign:   rb.Sign,
			X:      r.X[s:e:e],
			Y:      r.Y[s:e:e],
			Theta0: r.Theta0,
			Y0:     r.Y0,
		}
	}
	return out
}

// Solve finds the initial slope theta0 for which the path assembled from
// basis meets c, then fixes the vertical offset according to the anchor.
//
// The search holds y0 at zero and runs a secant iteration on
//
//	f(theta0) = property(position(theta0, 0)) − target
//
// seeded with theta0 = 0 and theta0 = −mean(k). No bracket is required. If
// the secant denominator vanishes the search stops with BestEffortStalled,
// and if c.MaxIter updates do not reach the tolerance it stops with
// BestEffortTimeout. Either way the last iterate is returned without an
// error; callers inspect Status, Iterations and Residual.
func Solve(basis *IntegralBasis, c ConstraintSpec, opts ...SolveOption) (*SolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if basis == nil || basis.Len() == 0 {
		return nil, fmt.Errorf("%w: empty basis", ErrTooFewSamples)
	}
	cfg := solveConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger.With(zap.Stringer("constraint", c.Kind))

	var evalErr error
	residual := func(theta0 float64) float64 {
		if evalErr != nil {
			return math.NaN()
		}
		feat, err := ExtractFeatures(basis.X, basis.Position(theta0, 0))
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		return c.Kind.measure(feat) - c.Target.Value
	}
	dim := c.Target.Dim
	tol := c.Tolerance

	t0 := 0.0
	f0 := residual(t0)
	t1 := -basis.MeanCurvature()
	if t1 == t0 || math.IsNaN(t1) {
		t1 = 1e-3
	}
	f1 := residual(t1)
	if evalErr != nil {
		return nil, evalErr
	}
	log.Debug("seeded",
		zap.Float64("theta0", t0), zap.Float64("residual0", f0),
		zap.Float64("theta1", t1), zap.Float64("residual1", f1))

	// Sign-changing pair of iterates, if one was seen.
	var bracket option[[2]float64]
	noteBracket := func(a, fa, b, fb float64) {
		if fa != 0 && fb != 0 && math.Signbit(fa) != math.Signbit(fb) {
			bracket.set([2]float64{a, b})
		}
	}
	noteBracket(t0, f0, t1, f1)

	status := BestEffortTimeout
	iter := 0
	if (Quantity{f0, dim}).Within(tol) && math.Abs(f0) <= math.Abs(f1) {
		t1, f1 = t0, f0
		status = Converged
	}
	for status != Converged && iter < c.MaxIter {
		if (Quantity{f1, dim}).Within(tol) {
			status = Converged
			break
		}
		denom := Quantity{f1, dim}.Sub(Quantity{f0, dim})
		if denom.IsZero() || math.Abs(denom.Value) <= 64*machineEpsilon*max(math.Abs(f0), math.Abs(f1)) {
			status = BestEffortStalled
			log.Debug("secant denominator vanished", zap.Int("iter", iter), zap.Float64("theta0", t1))
			break
		}
		t2 := t1 - f1*(t1-t0)/denom.Value
		f2 := residual(t2)
		if evalErr != nil {
			return nil, evalErr
		}
		iter++
		noteBracket(t1, f1, t2, f2)
		t0, f0, t1, f1 = t1, f1, t2, f2
		log.Debug("secant step", zap.Int("iter", iter), zap.Float64("theta0", t1), zap.Float64("residual", f1))
	}
	if status != Converged && (Quantity{f1, dim}).Within(tol) {
		status = Converged
	}

	if br, ok := bracket.get(); ok && cfg.bracketFallback && status != Converged {
		r, err := FindRoot(residual, br[0], br[1], RootOptions{Tolerance: tol.Value})
		if evalErr != nil {
			return nil, evalErr
		}
		if err == nil && math.Abs(r.Residual) < math.Abs(f1) {
			t1, f1 = r.Root, r.Residual
			iter += r.Iterations
			switch {
			case (Quantity{f1, dim}).Within(tol):
				status = Converged
			case r.Status == Converged:
				status = BestEffortStalled
			default:
				status = r.Status
			}
			log.Debug("bracket fallback", zap.Float64("theta0", t1), zap.Float64("residual", f1), zap.Stringer("status", status))
		}
	}

	theta0 := t1
	y := basis.Position(theta0, 0)
	feat, err := ExtractFeatures(basis.X, y)
	if err != nil {
		return nil, err
	}
	var y0 float64
	switch cfg.anchor {
	case AnchorOrigin:
		// yBase vanishes at the origin.
		y0 = cfg.anchorValue - theta0*basis.Origin
	case AnchorWaist:
		y0 = cfg.anchorValue - feat.Waist.Y
	default:
		panic("unreachable")
	}
	if y0 != 0 {
		y = basis.Position(theta0, y0)
		feat, err = ExtractFeatures(basis.X, y)
		if err != nil {
			return nil, err
		}
	}

	log.Debug("solved",
		zap.Float64("theta0", theta0), zap.Float64("y0", y0),
		zap.Stringer("status", status), zap.Int("iterations", iter))
	return &SolveResult{
		Theta0:     theta0,
		Y0:         y0,
		X:          slices.Clone(basis.X),
		Y:          y,
		Features:   feat,
		Status:     status,
		Iterations: iter,
		Residual:   Quantity{f1, dim},
		Basis:      basis,
	}, nil
}
