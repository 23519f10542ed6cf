package sidecut

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with both a relative and an absolute margin.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(margin, margin)
}

func line(x0, y0, x1, y1 float64) Line {
	return Line{Pt(x0, y0), Pt(x1, y1)}
}

// symmetricProfile is a V-shaped radius profile, mirror-symmetric about x=0.
func symmetricProfile() []ProfileSegment {
	return []ProfileSegment{
		line(-100, 20, 0, 10),
		line(0, 10, 100, 20),
	}
}

// constantProfile has radius 50 over [-100, 100]. Its path is the exact
// parabola y = x²/100 + theta0·x + y0.
func constantProfile() []ProfileSegment {
	return []ProfileSegment{line(-100, 50, 100, 50)}
}

func mustBasis(t testing.TB, segs []ProfileSegment, opts SampleOptions) *IntegralBasis {
	t.Helper()
	records, err := Sample(segs, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Integrate(Segment(records).Regions, 1)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
