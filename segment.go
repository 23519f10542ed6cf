package sidecut

import "fmt"

// Sign is the curvature sign shared by a segment or region.
type Sign int

const (
	Pos Sign = 1
	Neg Sign = -1
)

func (s Sign) String() string {
	switch s {
	case Pos:
		return "POS"
	case Neg:
		return "NEG"
	default:
		return fmt.Sprintf("Sign(%d)", int(s))
	}
}

func signOf(v float64) Sign {
	if v < 0 {
		return Neg
	}
	return Pos
}

// Junction classifies how one end of a segment meets its neighbour.
type Junction int

const (
	// JunctionOpen marks a global domain extreme; nothing lies beyond it and
	// radius values there are never extrapolated.
	JunctionOpen Junction = iota
	// JunctionContinuous marks an end that coincides with the neighbouring
	// segment's end within the join tolerance.
	JunctionContinuous
	// JunctionGap marks an end separated from its neighbour. The gap is split
	// at its midpoint and each side extrapolates up to it.
	JunctionGap
)

func (j Junction) String() string {
	switch j {
	case JunctionOpen:
		return "open"
	case JunctionContinuous:
		return "continuous"
	case JunctionGap:
		return "gap"
	default:
		return fmt.Sprintf("Junction(%d)", int(j))
	}
}

// Boundary is one end of a profile segment: its location in the
// (x, signed radius) plane and its tangent direction.
type Boundary struct {
	Point   Point
	Tangent Vec2
}

// radiusSlope returns dRadius/dx implied by the boundary tangent. A vertical
// tangent has no usable slope and yields 0.
func (b Boundary) radiusSlope() float64 {
	s, ok := b.Tangent.Slope()
	if !ok {
		return 0
	}
	return s
}

// ProfileSegment is a curve segment of a radius profile, as provided by a
// geometry evaluation host.
//
// Endpoints reports the two boundary points with tangents. Endpoints may be
// reported in either order and tangents in either orientation; the sampler
// normalises both to increasing x.
//
// RadiusAt returns the signed radius at independent coordinate x. It is only
// called for x within the segment's own x-extent.
type ProfileSegment interface {
	Endpoints() (start, end Boundary)
	RadiusAt(x float64) float64
}

var _ ProfileSegment = FuncSegment{}

// FuncSegment is a ProfileSegment backed by a radius function, for hosts that
// own curve evaluation.
type FuncSegment struct {
	Start  Boundary
	End    Boundary
	Radius func(x float64) float64
}

func (s FuncSegment) Endpoints() (Boundary, Boundary) { return s.Start, s.End }

func (s FuncSegment) RadiusAt(x float64) float64 { return s.Radius(x) }
