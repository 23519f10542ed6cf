package sidecut

import (
	"fmt"

	"go.uber.org/zap"
)

// Config configures [Reconstruct].
type Config struct {
	Sample SampleOptions
	// Ratio between the radius unit and the x unit. Zero means 1.
	Scale      float64
	Constraint ConstraintSpec
	Solve      []SolveOption
	// Logger receives debug output from every stage. Nil disables logging.
	Logger *zap.Logger
}

// Reconstruct samples segs, groups the samples into regions, integrates the
// curvature and solves for the path meeting cfg.Constraint.
func Reconstruct(segs []ProfileSegment, cfg Config) (*SolveResult, error) {
	if err := cfg.Constraint.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}

	records, err := Sample(segs, cfg.Sample)
	if err != nil {
		return nil, fmt.Errorf("sampling profile: %w", err)
	}
	seg := Segment(records)
	log.Debug("segmented profile", zap.Int("segments", len(records)), zap.Int("regions", len(seg.Regions)), zap.Int("samples", seg.Len()))

	basis, err := Integrate(seg.Regions, scale)
	if err != nil {
		return nil, fmt.Errorf("integrating curvature: %w", err)
	}
	log.Debug("integrated curvature",
		zap.Int("samples", basis.Len()),
		zap.Float64("origin", basis.Origin),
		zap.Float64("mean_curvature", basis.MeanCurvature()))

	opts := append([]SolveOption{WithLogger(log)}, cfg.Solve...)
	res, err := Solve(basis, cfg.Constraint, opts...)
	if err != nil {
		return nil, fmt.Errorf("solving %s: %w", cfg.Constraint.Kind, err)
	}
	if !res.Converged() {
		log.Debug("constraint not met",
			zap.Stringer("status", res.Status),
			zap.Stringer("residual", res.Residual),
			zap.Int("iterations", res.Iterations))
	}
	return res, nil
}
