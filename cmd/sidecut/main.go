// Command sidecut reconstructs the edge outline described by a radius
// profile document.
//
// Usage:
//
//	sidecut solve ski.yaml --format svg -o ski.svg
//	sidecut regions ski.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sidecut",
	Short: "Reconstruct a sidecut outline from its radius profile",
	Long: `sidecut integrates a piecewise radius-of-curvature profile into a planar
path and solves for the initial slope that meets a waist location or taper
angle constraint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	solveCmd.Flags().StringVarP(&solveFormat, "format", "f", formatJSON, "Output format: json, csv or svg")
	solveCmd.Flags().BoolVar(&perRegion, "per-region", false, "Emit one curve per region")
	solveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to file instead of stdout")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(regionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
