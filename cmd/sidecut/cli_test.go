package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A constant 50 unit radius with the waist moved 10 units aft of the
// centre. The path is y = x²/100 - 0.2x.
const constantProfile = `
name: constant
sampling:
  samples_per_segment: 21
segments:
  - kind: line
    points: [[-100, 50], [100, 50]]
constraint:
  kind: waist_location
  target: 10
  tolerance: 1e-6
  max_iter: 20
`

// Two segments of opposite sign separated by a gap around the origin.
const reverseProfile = `
name: reverse
sampling:
  samples_per_segment: 5
segments:
  - kind: line
    points: [[10, -50], [100, -50]]
  - kind: line
    points: [[-100, 50], [-10, 50]]
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns what it wrote to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Flags keep their values between executions.
	verbose = false
	solveFormat = formatJSON
	perRegion = false
	outputPath = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolveJSON(t *testing.T) {
	path := writeProfile(t, constantProfile)

	out, stderr, err := execute(t, "solve", path)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "warning")

	var got solution
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "constant", got.Name)
	assert.Equal(t, "waist-location", got.Constraint)
	assert.Equal(t, "converged", got.Status)
	assert.True(t, got.Converged)
	assert.InDelta(t, -0.2, got.Theta0, 1e-9)
	assert.InDelta(t, 10, got.Features.WaistLocation, 1e-6)
	assert.InDelta(t, 10, got.Features.Waist[0], 1e-6)
	assert.Nil(t, got.Regions)

	require.NotNil(t, got.Path)
	require.Len(t, got.Path.X, 21)
	require.Len(t, got.Path.Y, 21)
	for i, x := range got.Path.X {
		assert.InDelta(t, x*x/100-0.2*x, got.Path.Y[i], 1e-9, "x=%g", x)
	}
}

func TestSolvePerRegionJSON(t *testing.T) {
	path := writeProfile(t, constantProfile)

	out, _, err := execute(t, "solve", path, "--per-region")
	require.NoError(t, err)

	var got solution
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Nil(t, got.Path)
	require.Len(t, got.Regions, 1)
	require.NotNil(t, got.Regions[0].Region)
	assert.Equal(t, 0, *got.Regions[0].Region)
	assert.Equal(t, "POS", got.Regions[0].Sign)
	assert.Len(t, got.Regions[0].X, 21)
}

func TestSolveCSV(t *testing.T) {
	path := writeProfile(t, constantProfile)

	t.Run("path", func(t *testing.T) {
		out, _, err := execute(t, "solve", path, "--format", "csv")
		require.NoError(t, err)

		rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 22)
		assert.Equal(t, []string{"x", "y", "slope"}, rows[0])
		want := []float64{-100, 120, -2.2}
		for i, cell := range rows[1] {
			v, err := strconv.ParseFloat(cell, 64)
			require.NoError(t, err)
			assert.InDelta(t, want[i], v, 1e-9, rows[0][i])
		}
	})

	t.Run("per region", func(t *testing.T) {
		out, _, err := execute(t, "solve", path, "-f", "csv", "--per-region")
		require.NoError(t, err)

		rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"region", "x", "y", "slope"}, rows[0])
		for _, row := range rows[1:] {
			assert.Equal(t, "0", row[0])
		}
	})
}

func TestSolveSVG(t *testing.T) {
	path := writeProfile(t, constantProfile)
	dst := filepath.Join(t.TempDir(), "out.svg")

	out, _, err := execute(t, "solve", path, "--format", "svg", "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox=`))
	assert.Equal(t, 1, strings.Count(svg, "<path "))
	// y is flipped into SVG's y-down space.
	assert.Contains(t, svg, `d="M-100,-120 L`)
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestSolveWarnsWhenNotConverged(t *testing.T) {
	// A waist location outside the profile cannot be met.
	path := writeProfile(t, strings.Replace(constantProfile, "target: 10", "target: 1000", 1))

	out, stderr, err := execute(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: waist-location not met")

	var got solution
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Converged)
	assert.NotEqual(t, "converged", got.Status)
}

func TestSolveErrors(t *testing.T) {
	good := writeProfile(t, constantProfile)
	overlapping := writeProfile(t, strings.Replace(constantProfile,
		"[[-100, 50], [100, 50]]",
		"[[-100, 50], [100, 50]]\n  - kind: line\n    points: [[50, 50], [150, 50]]", 1))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing argument", []string{"solve"}, "accepts 1 arg(s)"},
		{"missing file", []string{"solve", filepath.Join(t.TempDir(), "nope.yaml")}, "failed to read profile"},
		{"bad format", []string{"solve", good, "--format", "png"}, "invalid format"},
		{"overlap", []string{"solve", overlapping}, "sampling profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegions(t *testing.T) {
	path := writeProfile(t, reverseProfile)

	out, _, err := execute(t, "regions", path)
	require.NoError(t, err)

	var got regionsDump
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "reverse", got.Name)

	require.Len(t, got.Segments, 2)
	first, second := got.Segments[0], got.Segments[1]
	// Records are in x order; Input keeps the document order.
	assert.Equal(t, 1, first.Input)
	assert.Equal(t, 0, second.Input)
	assert.Equal(t, "POS", first.Sign)
	assert.Equal(t, "NEG", second.Sign)
	assert.Equal(t, "open", first.StartJunction)
	assert.Equal(t, "gap", first.EndJunction)
	assert.Equal(t, -10.0, first.TrueEnd)
	assert.Equal(t, 0.0, first.SampleEnd)
	assert.Equal(t, 0.0, second.SampleStart)
	assert.Equal(t, []float64{-100, -75, -50, -25, 0}, first.X)

	require.Len(t, got.Regions, 2)
	assert.Equal(t, regionDump{Index: 0, Sign: "POS", Start: -100, End: 0, Samples: 5, Segments: []int{0}}, got.Regions[0])
	assert.Equal(t, regionDump{Index: 1, Sign: "NEG", Start: 0, End: 100, Samples: 5, Segments: []int{1}}, got.Regions[1])
}
