package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jedyeiser/sidecut"
	"github.com/jedyeiser/sidecut/internal/profile"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatSVG  = "svg"
)

var (
	// solve flags
	solveFormat string
	perRegion   bool
	outputPath  string
)

var solveCmd = &cobra.Command{
	Use:   "solve <profile.yaml>",
	Short: "Solve a profile and write the reconstructed path",
	Long: `Samples the profile, integrates its curvature and solves for the initial
slope meeting the profile's constraint. A solution that did not converge is
still written, with a warning on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	switch solveFormat {
	case formatJSON, formatCSV, formatSVG:
	default:
		return fmt.Errorf("invalid format: %q (valid: %s, %s, %s)", solveFormat, formatJSON, formatCSV, formatSVG)
	}

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

	res, err := sidecut.Reconstruct(segs, cfg)
	if err != nil {
		return fmt.Errorf("failed to reconstruct %s: %w", args[0], err)
	}
	logger.Info("Solved profile",
		zap.String("profile", p.Name),
		zap.Stringer("status", res.Status),
		zap.Int("iterations", res.Iterations),
		zap.Float64("theta0", res.Theta0))
	if !res.Converged() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not met (%s after %d iterations, residual %s)\n",
			cfg.Constraint.Kind, res.Status, res.Iterations, res.Residual)
	}

	return withOutput(cmd, func(w io.Writer) error {
		switch solveFormat {
		case formatCSV:
			return writeCSV(w, res, perRegion)
		case formatSVG:
			return writeSVG(w, res, perRegion)
		default:
			return writeJSON(w, newSolution(p, cfg.Constraint, res, perRegion))
		}
	})
}

// withOutput runs fn against the -o file, or the command's stdout when no
// file was given.
func withOutput(cmd *cobra.Command, fn func(w io.Writer) error) (err error) {
	if outputPath == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to write output: %w", cerr)
		}
	}()
	return fn(f)
}

type solution struct {
	Name       string  `json:"name,omitempty"`
	Constraint string  `json:"constraint"`
	Target     float64 `json:"target"`
	Status     string  `json:"status"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`

	Theta0   float64  `json:"theta0"`
	Y0       float64  `json:"y0"`
	Features features `json:"features"`

	Path    *curve  `json:"path,omitempty"`
	Regions []curve `json:"regions,omitempty"`
}

type features struct {
	WidestForebody [2]float64 `json:"widest_forebody"`
	WidestAftbody  [2]float64 `json:"widest_aftbody"`
	Waist          [2]float64 `json:"waist"`
	WaistLocation  float64    `json:"waist_location"`
	// Degrees
	TaperAngle float64 `json:"taper_angle"`
}

type curve struct {
	Region *int      `json:"region,omitempty"`
	Sign   string    `json:"sign,omitempty"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
}

func xy(pt sidecut.Point) [2]float64 { return [2]float64{pt.X, pt.Y} }

func newSolution(p *profile.Profile, c sidecut.ConstraintSpec, res *sidecut.SolveResult, perRegion bool) solution {
	f := res.Features
	s := solution{
		Name:       p.Name,
		Constraint: c.Kind.String(),
		Target:     c.Target.Value,
		Status:     res.Status.String(),
		Converged:  res.Converged(),
		Iterations: res.Iterations,
		Residual:   res.Residual.Value,
		Theta0:     res.Theta0,
		Y0:         res.Y0,
		Features: features{
			WidestForebody: xy(f.WidestForebody),
			WidestAftbody:  xy(f.WidestAftbody),
			Waist:          xy(f.Waist),
			WaistLocation:  f.WaistLocation,
			TaperAngle:     f.TaperAngle * 180 / math.Pi,
		},
	}
	if !perRegion {
		s.Path = &curve{X: res.X, Y: res.Y}
		return s
	}
	for _, sec := range res.Sections() {
		idx := sec.Index
		s.Regions = append(s.Regions, curve{Region: &idx, Sign: sec.Sign.String(), X: sec.X, Y: sec.Y})
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// writeCSV writes one row per sample. With perRegion a leading column names
// the sample's region.
func writeCSV(w io.Writer, res *sidecut.SolveResult, perRegion bool) error {
	cw := csv.NewWriter(w)
	header := []string{"x", "y", "slope"}
	if perRegion {
		header = append([]string{"region"}, header...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	slope := res.Slope()
	for _, rb := range res.Basis.Regions {
		for i := rb.Start; i < rb.End; i++ {
			row := []string{formatFloat(res.X[i]), formatFloat(res.Y[i]), formatFloat(slope[i])}
			if perRegion {
				row = append([]string{strconv.Itoa(rb.Index)}, row...)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// writeSVG writes a standalone SVG document showing the path in SVG's y-down
// space, one <path> per region with perRegion.
func writeSVG(w io.Writer, res *sidecut.SolveResult, perRegion bool) error {
	bounds := sidecut.BoundsOf(sidecut.TransformPoints(res.Points(), sidecut.FlipY))
	margin := 0.02 * max(bounds.Width(), bounds.Height())
	if margin == 0 {
		margin = 1
	}
	bounds = bounds.Inflate(margin, margin)

	opts := sidecut.SVGOptions{MaxPrecision: 4, FlipY: true}
	var paths []string
	if perRegion {
		for _, sec := range res.Sections() {
			paths = append(paths, sidecut.PolylineSVG(sec.Points(), opts))
		}
	} else {
		paths = append(paths, sidecut.PolylineSVG(res.Points(), opts))
	}

	stroke := margin / 4
	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		formatFloat(bounds.X0), formatFloat(bounds.Y0), formatFloat(bounds.Width()), formatFloat(bounds.Height())); err != nil {
		return err
	}
	for _, d := range paths {
		if _, err := fmt.Fprintf(w, `  <path d="%s" fill="none" stroke="black" stroke-width="%s"/>`+"\n", d, formatFloat(stroke)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}
