package sidecut

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// RadiusEpsilon is the smallest radius magnitude that can be inverted into a
// curvature.
const RadiusEpsilon = 1e-9

// SampleOptions configures [Sample]. Zero fields take their defaults.
type SampleOptions struct {
	// Number of evenly spaced samples per segment, including both ends.
	// Defaults to 50; values below 2 are rejected.
	SamplesPerSegment int
	// Maximum distance between two segment ends that still counts as a
	// continuous junction. Defaults to 1e-6.
	JoinTolerance float64
	// Amount by which two segments may overlap before the overlap is
	// rejected. Defaults to 1e-9.
	OverlapTolerance float64
	// Smallest admissible radius magnitude. Defaults to RadiusEpsilon.
	RadiusEpsilon float64
}

// DefaultSampleOptions returns the options used for zero fields.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		SamplesPerSegment: 50,
		JoinTolerance:     1e-6,
		OverlapTolerance:  1e-9,
		RadiusEpsilon:     RadiusEpsilon,
	}
}

func (o SampleOptions) withDefaults() SampleOptions {
	def := DefaultSampleOptions()
	if o.SamplesPerSegment == 0 {
		o.SamplesPerSegment = def.SamplesPerSegment
	}
	if o.JoinTolerance == 0 {
		o.JoinTolerance = def.JoinTolerance
	}
	if o.OverlapTolerance == 0 {
		o.OverlapTolerance = def.OverlapTolerance
	}
	if o.RadiusEpsilon == 0 {
		o.RadiusEpsilon = def.RadiusEpsilon
	}
	return o
}

// SegmentRecord is one input segment's contribution to the radius profile.
type SegmentRecord struct {
	// Position in x order.
	Index int
	// Position in the caller's input slice.
	Input int
	Sign  Sign

	// Samples, ordered by increasing x.
	X      []float64
	Radius []float64

	// Boundaries with tangents oriented toward increasing x.
	Start, End Boundary

	// The segment's own geometric extent.
	TrueStart, TrueEnd float64
	// The sampled extent, which reaches into neighbouring gaps.
	SampleStart, SampleEnd float64

	StartJunction, EndJunction Junction
}

type normalized struct {
	input      int
	seg        ProfileSegment
	start, end Boundary
}

func normalize(i int, seg ProfileSegment, joinTol float64) (normalized, error) {
	start, end := seg.Endpoints()
	for _, pt := range []Point{start.Point, end.Point} {
		if pt.IsNaN() || pt.IsInf() {
			return normalized{}, fmt.Errorf("segment %d: %w: %v", i, ErrNonFinite, pt)
		}
	}
	if start.Point.X > end.Point.X {
		start, end = end, start
	}
	if end.Point.X-start.Point.X <= joinTol {
		return normalized{}, fmt.Errorf("segment %d: %w", i, ErrEmptyDomain)
	}
	for _, b := range []*Boundary{&start, &end} {
		if b.Tangent.X < 0 {
			b.Tangent = b.Tangent.Negate()
		}
	}
	if start.Point.Y*end.Point.Y < 0 {
		return normalized{}, &AxisCrossingError{
			Segment: i,
			X:       start.Point.X,
			Radius:  start.Point.Y,
		}
	}
	return normalized{input: i, seg: seg, start: start, end: end}, nil
}

// Sample turns ordered profile segments into evenly spaced (x, signed radius)
// samples, one record per segment, sorted by x.
//
// Segments are sorted by their start coordinate. Overlapping x-domains are
// rejected with an *OverlappingDomainsError. Where two neighbours are
// separated by a gap, the gap is split at its midpoint and each neighbour is
// sampled up to it, extrapolating linearly from its boundary along the slope
// implied by the boundary tangent. The first and last coordinate of the whole
// profile are never extrapolated; the boundary radius is used unmodified.
//
// A segment whose radius changes sign yields an *AxisCrossingError, and a
// radius within opts.RadiusEpsilon of zero a *DegenerateRadiusError.
func Sample(segs []ProfileSegment, opts SampleOptions) ([]SegmentRecord, error) {
	opts = opts.withDefaults()
	if opts.SamplesPerSegment < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples per segment, got %d", ErrTooFewSamples, opts.SamplesPerSegment)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrTooFewSamples)
	}

	norm := make([]normalized, len(segs))
	for i, seg := range segs {
		n, err := normalize(i, seg, opts.JoinTolerance)
		if err != nil {
			return nil, err
		}
		norm[i] = n
	}
	slices.SortStableFunc(norm, func(a, b normalized) int {
		return cmp.Compare(a.start.Point.X, b.start.Point.X)
	})

	// Sorted by start, so a segment overlaps an earlier one iff it starts
	// before the furthest end seen so far.
	furthest := 0
	for j := 1; j < len(norm); j++ {
		prev := norm[furthest]
		if norm[j].start.Point.X < prev.end.Point.X-opts.OverlapTolerance {
			return nil, &OverlappingDomainsError{
				First:  prev.input,
				Second: norm[j].input,
				From:   norm[j].start.Point.X,
				To:     min(prev.end.Point.X, norm[j].end.Point.X),
			}
		}
		if norm[j].end.Point.X > prev.end.Point.X {
			furthest = j
		}
	}

	records := make([]SegmentRecord, len(norm))
	for i, n := range norm {
		records[i] = SegmentRecord{
			Index:         i,
			Input:         n.input,
			Sign:          segmentSign(n.start, n.end),
			Start:         n.start,
			End:           n.end,
			TrueStart:     n.start.Point.X,
			TrueEnd:       n.end.Point.X,
			SampleStart:   n.start.Point.X,
			SampleEnd:     n.end.Point.X,
			StartJunction: JunctionOpen,
			EndJunction:   JunctionOpen,
		}
	}
	for i := 1; i < len(records); i++ {
		prev, next := &records[i-1], &records[i]
		if next.TrueStart-prev.TrueEnd <= opts.JoinTolerance {
			prev.EndJunction = JunctionContinuous
			next.StartJunction = JunctionContinuous
			continue
		}
		mid := 0.5 * (prev.TrueEnd + next.TrueStart)
		prev.EndJunction, prev.SampleEnd = JunctionGap, mid
		next.StartJunction, next.SampleStart = JunctionGap, mid
	}

	for i := range records {
		if err := sampleRecord(&records[i], norm[i].seg, opts); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// segmentSign picks the sign of the endpoint further from the axis, so that
// an endpoint sitting exactly on the axis does not decide the sign.
func segmentSign(start, end Boundary) Sign {
	if math.Abs(start.Point.Y) >= math.Abs(end.Point.Y) {
		return signOf(start.Point.Y)
	}
	return signOf(end.Point.Y)
}

func sampleRecord(r *SegmentRecord, seg ProfileSegment, opts SampleOptions) error {
	n := opts.SamplesPerSegment
	r.X = make([]float64, n)
	r.Radius = make([]float64, n)
	span := r.SampleEnd - r.SampleStart
	for i := range n {
		x := r.SampleStart + span*float64(i)/float64(n-1)
		if i == n-1 {
			x = r.SampleEnd
		}
		rad := r.radiusAt(seg, x)
		if math.Abs(rad) <= opts.RadiusEpsilon {
			return &DegenerateRadiusError{Source: "segment", Index: r.Input, X: x, Radius: rad}
		}
		if signOf(rad) != r.Sign {
			return &AxisCrossingError{Segment: r.Input, X: x, Radius: rad}
		}
		r.X[i] = x
		r.Radius[i] = rad
	}
	return nil
}

// radiusAt evaluates the record's radius at x, which may lie in an adjacent
// gap.
func (r *SegmentRecord) radiusAt(seg ProfileSegment, x float64) float64 {
	switch {
	case x <= r.TrueStart:
		if r.StartJunction == JunctionOpen || x == r.TrueStart {
			return r.Start.Point.Y
		}
		return r.Start.Point.Y + r.Start.radiusSlope()*(x-r.TrueStart)
	case x >= r.TrueEnd:
		if r.EndJunction == JunctionOpen || x == r.TrueEnd {
			return r.End.Point.Y
		}
		return r.End.Point.Y + r.End.radiusSlope()*(x-r.TrueEnd)
	default:
		return seg.RadiusAt(x)
	}
}

// Extrapolated reports whether x lies outside the record's own geometric
// extent, that is, in a gap it was extended into.
func (r *SegmentRecord) Extrapolated(x float64) bool {
	return x < r.TrueStart || x > r.TrueEnd
}
