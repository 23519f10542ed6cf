package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jedyeiser/sidecut"
	"github.com/jedyeiser/sidecut/internal/profile"
)

var regionsCmd = &cobra.Command{
	Use:   "regions <profile.yaml>",
	Short: "Show how a profile is sampled and grouped into regions",
	Long: `Samples the profile without solving it and prints every segment's
sampled extent and junctions, followed by the regions of consistent
curvature sign, as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegions,
}

type segmentDump struct {
	Index         int       `json:"index"`
	Input         int       `json:"input"`
	Sign          string    `json:"sign"`
	TrueStart     float64   `json:"true_start"`
	TrueEnd       float64   `json:"true_end"`
	SampleStart   float64   `json:"sample_start"`
	SampleEnd     float64   `json:"sample_end"`
	StartJunction string    `json:"start_junction"`
	EndJunction   string    `json:"end_junction"`
	X             []float64 `json:"x"`
	Radius        []float64 `json:"radius"`
}

type regionDump struct {
	Index    int     `json:"index"`
	Sign     string  `json:"sign"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Samples  int     `json:"samples"`
	Segments []int   `json:"segments"`
}

type regionsDump struct {
	Name     string        `json:"name,omitempty"`
	Segments []segmentDump `json:"segments"`
	Regions  []regionDump  `json:"regions"`
}

func runRegions(cmd *cobra.Command, args []string) error {
	p, err := profile.Load(args[0])
	if err != nil {
		return err
	}
	segs, err := p.ProfileSegments()
	if err != nil {
		return err
	}
	cfg, err := p.Config(logger)
	if err != nil {
		return err
	}
	records, err := sidecut.Sample(segs, cfg.Sample)
	if err != nil {
		return fmt.Errorf("failed to sample %s: %w", args[0], err)
	}
	seg := sidecut.Segment(records)
	logger.Info("Segmented profile",
		zap.String("profile", p.Name),
		zap.Int("segments", len(seg.Segments)),
		zap.Int("regions", len(seg.Regions)))

	return withOutput(cmd, func(w io.Writer) error {
		return writeJSON(w, newRegionsDump(p.Name, seg))
	})
}

func newRegionsDump(name string, seg sidecut.Segmentation) regionsDump {
	out := regionsDump{
		Name:     name,
		Segments: make([]segmentDump, len(seg.Segments)),
		Regions:  make([]regionDump, len(seg.Regions)),
	}
	for i, r := range seg.Segments {
		out.Segments[i] = segmentDump{
			Index:         r.Index,
			Input:         r.Input,
			Sign:          r.Sign.String(),
			TrueStart:     r.TrueStart,
			TrueEnd:       r.TrueEnd,
			SampleStart:   r.SampleStart,
			SampleEnd:     r.SampleEnd,
			StartJunction: r.StartJunction.String(),
			EndJunction:   r.EndJunction.String(),
			X:             r.X,
			Radius:        r.Radius,
		}
	}
	for i, r := range seg.Regions {
		d := regionDump{
			Index:    r.Index,
			Sign:     r.Sign.String(),
			Samples:  len(r.X),
			Segments: r.Segments,
		}
		if len(r.X) > 0 {
			d.Start, d.End = r.X[0], r.X[len(r.X)-1]
		}
		out.Regions[i] = d
	}
	return out
}
