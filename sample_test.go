package sidecut

import (
	"errors"
	"math"
	"testing"
)

func TestSampleGapExtrapolation(t *testing.T) {
	segs := []ProfileSegment{
		line(0, 10, 40, 14),
		line(50, 20, 90, 24),
	}
	recs, err := Sample(segs, SampleOptions{SamplesPerSegment: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	left, right := recs[0], recs[1]

	if left.EndJunction != JunctionGap || right.StartJunction != JunctionGap {
		t.Errorf("got junctions %s/%s, want gap/gap", left.EndJunction, right.StartJunction)
	}
	diff(t, []float64{0, 11.25, 22.5, 33.75, 45}, left.X, approx(1e-12))
	diff(t, []float64{45, 56.25, 67.5, 78.75, 90}, right.X, approx(1e-12))

	// Each side extends its boundary slope of 0.1 over the 5mm half-gap.
	if got := left.Radius[4]; !near(got, 14.5, 1e-12) {
		t.Errorf("left radius at gap midpoint = %v, want 14.5", got)
	}
	if got := right.Radius[0]; !near(got, 19.5, 1e-12) {
		t.Errorf("right radius at gap midpoint = %v, want 19.5", got)
	}
	if !left.Extrapolated(45) || left.Extrapolated(40) {
		t.Error("left record misreports its extrapolated range")
	}
	diff(t, [2]float64{0, 40}, [2]float64{left.TrueStart, left.TrueEnd})
	diff(t, [2]float64{0, 45}, [2]float64{left.SampleStart, left.SampleEnd})
}

func TestSampleGlobalEndpointClamp(t *testing.T) {
	// The radius function disagrees with the boundary everywhere; the global
	// extremes must still report the boundary radius.
	seg := FuncSegment{
		Start:  Boundary{Pt(0, 10), Vec(1, 1)},
		End:    Boundary{Pt(10, 10), Vec(1, -1)},
		Radius: func(float64) float64 { return 12 },
	}
	recs, err := Sample([]ProfileSegment{seg}, SampleOptions{SamplesPerSegment: 4})
	if err != nil {
		t.Fatal(err)
	}
	r := recs[0]
	if r.StartJunction != JunctionOpen || r.EndJunction != JunctionOpen {
		t.Errorf("got junctions %s/%s, want open/open", r.StartJunction, r.EndJunction)
	}
	diff(t, []float64{10, 12, 12, 10}, r.Radius)
}

func TestSampleOrdering(t *testing.T) {
	segs := []ProfileSegment{
		line(100, 20, 0, 10),
		line(-100, 20, 0, 10),
	}
	recs, err := Sample(segs, SampleOptions{SamplesPerSegment: 3})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{1, 0}, []int{recs[0].Input, recs[1].Input})
	diff(t, []int{0, 1}, []int{recs[0].Index, recs[1].Index})
	diff(t, []float64{-100, -50, 0}, recs[0].X)
	diff(t, []float64{0, 50, 100}, recs[1].X)
	diff(t, []float64{10, 15, 20}, recs[1].Radius, approx(1e-12))
	if recs[0].EndJunction != JunctionContinuous || recs[1].StartJunction != JunctionContinuous {
		t.Errorf("got junctions %s/%s, want continuous", recs[0].EndJunction, recs[1].StartJunction)
	}
	// Tangents of the reversed line point toward +x.
	if recs[1].Start.Tangent.X <= 0 || recs[1].End.Tangent.X <= 0 {
		t.Errorf("tangents not oriented toward +x: %v, %v", recs[1].Start.Tangent, recs[1].End.Tangent)
	}
}

func TestSampleSign(t *testing.T) {
	recs, err := Sample([]ProfileSegment{
		line(0, -10, 10, -20),
		line(10, 5, 20, 5),
	}, SampleOptions{SamplesPerSegment: 2})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Sign{Neg, Pos}, []Sign{recs[0].Sign, recs[1].Sign})
}

func TestSampleOverlap(t *testing.T) {
	_, err := Sample([]ProfileSegment{
		line(0, 10, 50, 14),
		line(40, 14, 90, 20),
	}, SampleOptions{})
	var oe *OverlappingDomainsError
	if !errors.As(err, &oe) {
		t.Fatalf("got error %v, want *OverlappingDomainsError", err)
	}
	diff(t, &OverlappingDomainsError{First: 0, Second: 1, From: 40, To: 50}, oe)
	if !errors.Is(err, ErrOverlappingDomains) {
		t.Error("error does not match ErrOverlappingDomains")
	}

	// A segment nested inside an earlier, longer one.
	_, err = Sample([]ProfileSegment{
		line(0, 10, 100, 10),
		line(20, 10, 30, 10),
	}, SampleOptions{})
	if !errors.Is(err, ErrOverlappingDomains) {
		t.Errorf("got error %v, want ErrOverlappingDomains", err)
	}

	// Touching within the tolerance is not an overlap.
	_, err = Sample([]ProfileSegment{
		line(0, 10, 50, 14),
		line(50-1e-12, 14, 90, 20),
	}, SampleOptions{})
	if err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		segs []ProfileSegment
		opts SampleOptions
		want error
	}{
		{"axis crossing", []ProfileSegment{line(0, -5, 10, 5)}, SampleOptions{}, ErrAxisCrossing},
		{"degenerate radius", []ProfileSegment{line(0, 0, 10, 0)}, SampleOptions{}, ErrDegenerateRadius},
		{"empty domain", []ProfileSegment{line(5, 10, 5, 12)}, SampleOptions{}, ErrEmptyDomain},
		{"nan boundary", []ProfileSegment{line(0, math.NaN(), 5, 12)}, SampleOptions{}, ErrNonFinite},
		{"infinite boundary", []ProfileSegment{line(0, 10, math.Inf(1), 12)}, SampleOptions{}, ErrNonFinite},
		{"too few samples", []ProfileSegment{line(0, 10, 10, 10)}, SampleOptions{SamplesPerSegment: 1}, ErrTooFewSamples},
		{"no segments", nil, SampleOptions{}, ErrTooFewSamples},
		{
			"sign change inside segment",
			[]ProfileSegment{FuncSegment{
				Start:  Boundary{Pt(0, 10), Vec(1, 0)},
				End:    Boundary{Pt(10, 10), Vec(1, 0)},
				Radius: func(x float64) float64 { return 10 - x*(10-x) },
			}},
			SampleOptions{SamplesPerSegment: 11},
			ErrAxisCrossing,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Sample(tc.segs, tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("got error %v, want %v", err, tc.want)
			}
		})
	}
}

func near(got, want, eps float64) bool {
	d := got - want
	return d <= eps && d >= -eps
}
