// Package profile reads radius profile documents.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jedyeiser/sidecut"
)

// Profile is a radius profile together with the constraint its path must
// meet.
type Profile struct {
	Name string `yaml:"name"`

	// Ratio between the radius unit and the x unit (default: 1)
	Scale float64 `yaml:"scale"`

	Sampling   SamplingConfig   `yaml:"sampling"`
	Segments   []SegmentConfig  `yaml:"segments"`
	Constraint ConstraintConfig `yaml:"constraint"`
	Anchor     AnchorConfig     `yaml:"anchor"`
	Solver     SolverConfig     `yaml:"solver"`
}

// SamplingConfig configures the radius sampler.
type SamplingConfig struct {
	SamplesPerSegment int     `yaml:"samples_per_segment"` // default: 50
	JoinTolerance     float64 `yaml:"join_tolerance"`      // default: 1e-6
	OverlapTolerance  float64 `yaml:"overlap_tolerance"`   // default: 1e-9
}

// SegmentConfig is one segment of the radius profile, given by its control
// points in the (x, signed radius) plane.
type SegmentConfig struct {
	Kind   string      `yaml:"kind"` // line, quad, cubic
	Points [][]float64 `yaml:"points"`
}

// ConstraintConfig configures the global constraint.
type ConstraintConfig struct {
	Kind      string  `yaml:"kind"` // waist_location, taper_angle
	Target    float64 `yaml:"target"`
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
	// Unit of Target and Tolerance for taper_angle: deg or rad (default: deg)
	AngleUnit string `yaml:"angle_unit"`
}

// AnchorConfig configures how the path is placed vertically.
type AnchorConfig struct {
	Mode  string  `yaml:"mode"` // origin, waist
	Value float64 `yaml:"value"`
}

// SolverConfig configures the constraint solver.
type SolverConfig struct {
	BracketFallback bool `yaml:"bracket_fallback"`
}

const (
	KindLine  = "line"
	KindQuad  = "quad"
	KindCubic = "cubic"

	WaistLocation = "waist_location"
	TaperAngle    = "taper_angle"

	Degrees = "deg"
	Radians = "rad"

	AnchorOrigin = "origin"
	AnchorWaist  = "waist"
)

var pointCounts = map[string]int{
	KindLine:  2,
	KindQuad:  3,
	KindCubic: 4,
}

// Default returns a profile with every default filled in and no segments.
func Default() *Profile {
	return &Profile{
		Scale: 1,
		Sampling: SamplingConfig{
			SamplesPerSegment: 50,
			JoinTolerance:     1e-6,
			OverlapTolerance:  1e-9,
		},
		Constraint: ConstraintConfig{
			Kind:      WaistLocation,
			Tolerance: 1e-3,
			MaxIter:   50,
			AngleUnit: Degrees,
		},
		Anchor: AnchorConfig{Mode: AnchorOrigin},
	}
}

// Load reads and validates the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile. Fields missing from the
// document keep their defaults; unknown fields are rejected.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile for errors that can be detected without
// sampling it.
func (p *Profile) Validate() error {
	if len(p.Segments) == 0 {
		return fmt.Errorf("profile has no segments")
	}
	if !(p.Scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", p.Scale)
	}
	if p.Sampling.SamplesPerSegment < 2 {
		return fmt.Errorf("samples_per_segment must be at least 2, got %d", p.Sampling.SamplesPerSegment)
	}
	for i, s := range p.Segments {
		if _, err := s.segment(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	switch p.Constraint.Kind {
	case WaistLocation, TaperAngle:
	default:
		return fmt.Errorf("invalid constraint kind: %q (valid: %s, %s)", p.Constraint.Kind, WaistLocation, TaperAngle)
	}
	switch p.Constraint.AngleUnit {
	case Degrees, Radians:
	default:
		return fmt.Errorf("invalid angle unit: %q (valid: %s, %s)", p.Constraint.AngleUnit, Degrees, Radians)
	}
	switch p.Anchor.Mode {
	case AnchorOrigin, AnchorWaist:
	default:
		return fmt.Errorf("invalid anchor mode: %q (valid: %s, %s)", p.Anchor.Mode, AnchorOrigin, AnchorWaist)
	}
	c, err := p.ConstraintSpec()
	if err != nil {
		return err
	}
	return c.Validate()
}

func (s SegmentConfig) segment() (sidecut.ProfileSegment, error) {
	want, ok := pointCounts[s.Kind]
	if !ok {
		return nil, fmt.Errorf("invalid kind: %q (valid: %s, %s, %s)", s.Kind, KindLine, KindQuad, KindCubic)
	}
	if len(s.Points) != want {
		return nil, fmt.Errorf("%s needs %d points, got %d", s.Kind, want, len(s.Points))
	}
	pts := make([]sidecut.Point, want)
	for i, xy := range s.Points {
		if len(xy) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2", i, len(xy))
		}
		pts[i] = sidecut.Pt(xy[0], xy[1])
	}
	switch s.Kind {
	case KindLine:
		return sidecut.Line{P0: pts[0], P1: pts[1]}, nil
	case KindQuad:
		q := sidecut.QuadBez{P0: pts[0], P1: pts[1], P2: pts[2]}
		if !q.MonotonicX() {
			return nil, fmt.Errorf("quad reverses direction along x")
		}
		return q, nil
	case KindCubic:
		c := sidecut.CubicBez{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3]}
		if !c.MonotonicX() {
			return nil, fmt.Errorf("cubic reverses direction along x")
		}
		return c, nil
	default:
		panic("unreachable")
	}
}

// ProfileSegments converts the segments into engine segments.
func (p *Profile) ProfileSegments() ([]sidecut.ProfileSegment, error) {
	out := make([]sidecut.ProfileSegment, len(p.Segments))
	for i, s := range p.Segments {
		seg, err := s.segment()
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out[i] = seg
	}
	return out, nil
}

// ConstraintSpec converts the constraint, applying the angle unit.
func (p *Profile) ConstraintSpec() (sidecut.ConstraintSpec, error) {
	c := p.Constraint
	spec := sidecut.ConstraintSpec{MaxIter: c.MaxIter}
	switch c.Kind {
	case WaistLocation:
		spec.Kind = sidecut.WaistLocation
		spec.Target = sidecut.Length(c.Target)
		spec.Tolerance = sidecut.Length(c.Tolerance)
	case TaperAngle:
		spec.Kind = sidecut.TaperAngle
		if c.AngleUnit == Radians {
			spec.Target = sidecut.Angle(c.Target)
			spec.Tolerance = sidecut.Angle(c.Tolerance)
		} else {
			spec.Target = sidecut.Degrees(c.Target)
			spec.Tolerance = sidecut.Degrees(c.Tolerance)
		}
	default:
		return sidecut.ConstraintSpec{}, fmt.Errorf("invalid constraint kind: %q", c.Kind)
	}
	return spec, nil
}

// Config converts the profile into a pipeline configuration logging to
// logger.
func (p *Profile) Config(logger *zap.Logger) (sidecut.Config, error) {
	spec, err := p.ConstraintSpec()
	if err != nil {
		return sidecut.Config{}, err
	}
	anchor := sidecut.AnchorOrigin
	if p.Anchor.Mode == AnchorWaist {
		anchor = sidecut.AnchorWaist
	}
	return sidecut.Config{
		Sample: sidecut.SampleOptions{
			SamplesPerSegment: p.Sampling.SamplesPerSegment,
			JoinTolerance:     p.Sampling.JoinTolerance,
			OverlapTolerance:  p.Sampling.OverlapTolerance,
		},
		Scale:      p.Scale,
		Constraint: spec,
		Solve: []sidecut.SolveOption{
			sidecut.WithAnchor(anchor, p.Anchor.Value),
			sidecut.WithBracketFallback(p.Solver.BracketFallback),
		},
		Logger: logger,
	}, nil
}
