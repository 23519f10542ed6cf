package sidecut

import (
	"errors"
	"fmt"
)

var (
	ErrOverlappingDomains = errors.New("overlapping segment domains")
	ErrAxisCrossing       = errors.New("segment crosses the symmetry axis")
	ErrDegenerateRadius   = errors.New("degenerate radius")
	ErrEmptyDomain        = errors.New("segment has an empty x-domain")
	ErrNonFinite          = errors.New("segment boundary is not finite")
	ErrTooFewSamples      = errors.New("too few samples")
	ErrSampleMismatch     = errors.New("sample slices differ in length")
	ErrNoBracket          = errors.New("root is not bracketed")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrInvalidConstraint  = errors.New("invalid constraint")
)

// OverlappingDomainsError reports two input segments whose x-domains
// intersect. Segment indices refer to the caller's input order.
type OverlappingDomainsError struct {
	First, Second int
	// The overlapping x-range.
	From, To float64
}

func (e *OverlappingDomainsError) Error() string {
	return fmt.Sprintf("segments %d and %d overlap on x ∈ [%g, %g]", e.First, e.Second, e.From, e.To)
}

func (e *OverlappingDomainsError) Unwrap() error { return ErrOverlappingDomains }

// AxisCrossingError reports a segment whose radius changes sign, either
// between its endpoints or at a sampled coordinate.
type AxisCrossingError struct {
	Segment int
	X       float64
	Radius  float64
}

func (e *AxisCrossingError) Error() string {
	return fmt.Sprintf("segment %d crosses the symmetry axis near x=%g (radius %g); split it at the crossing", e.Segment, e.X, e.Radius)
}

func (e *AxisCrossingError) Unwrap() error { return ErrAxisCrossing }

// DegenerateRadiusError reports a radius too close to zero to be inverted
// into a curvature.
type DegenerateRadiusError struct {
	// Source is "segment" or "region".
	Source string
	Index  int
	X      float64
	Radius float64
}

func (e *DegenerateRadiusError) Error() string {
	return fmt.Sprintf("radius %g at x=%g in %s %d is too close to zero", e.Radius, e.X, e.Source, e.Index)
}

func (e *DegenerateRadiusError) Unwrap() error { return ErrDegenerateRadius }

// NoBracketError reports that f(a) and f(b) do not differ in sign.
type NoBracketError struct {
	A, B   float64
	FA, FB float64
}

func (e *NoBracketError) Error() string {
	return fmt.Sprintf("f(%g)=%g and f(%g)=%g do not bracket a root", e.A, e.FA, e.B, e.FB)
}

func (e *NoBracketError) Unwrap() error { return ErrNoBracket }

// DimensionError reports an operation mixing quantities of different
// physical dimensions.
type DimensionError struct {
	Op        string
	Want, Got Dimension
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Op, e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }
