package sidecut

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY mirrors about the longitudinal axis. Applied to one side of a
// symmetric planform it produces the opposite side.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// TransformPoints applies aff to every point, returning a new slice.
func TransformPoints(pts []Point, aff Affine) []Point {
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i] = pt.Transform(aff)
	}
	return out
}
