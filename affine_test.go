package sidecut

import (
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
	assertNear(t, p.Transform(FlipY).Transform(FlipY), p, epsilon)
	assertNear(t, p.Transform(Affine{2, 0, 0, 2, 5, 6}), Pt(11, 14), epsilon)
	// Shear x by y.
	assertNear(t, p.Transform(Affine{1, 0, 1, 1, 0, 0}), Pt(7, 4), epsilon)
}

func TestTransformPoints(t *testing.T) {
	pts := []Point{Pt(0, 1), Pt(2, -3)}
	got := TransformPoints(pts, FlipY)
	diff(t, []Point{Pt(0, -1), Pt(2, 3)}, got)
	// The input is left alone.
	diff(t, []Point{Pt(0, 1), Pt(2, -3)}, pts)
}
