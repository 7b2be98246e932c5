// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/524D/mzindex/msdata"
	"github.com/524D/mzindex/mzml"
	"github.com/524D/mzindex/peaks"
)

var (
	// Flags for spectrum command
	ordinal        int
	nativeID       string
	spectrumDetail string
	// Flags shared by spectrum and export (centroiding)
	centroidLevels string
	noiseFloor     float64
	refineWindow   string
	// Flags for export command
	outputFile   string
	exportDetail string
	workers      int
)

var rootCmd = &cobra.Command{
	Use:   "mzindex",
	Short: "mzindex - spectrum indexing and Lorentzian peak fitting",
	Long: `mzindex builds a randomly addressable index over mass spectrometry
datasets, materializes spectrum records at selectable detail levels,
and fits closed-form Lorentzian peak models to magnitude samples.

A dataset root is a single mzML file or a directory of mzML files.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(spectrumCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(exportCmd)

	// Spectrum command flags
	spectrumCmd.Flags().IntVar(&ordinal, "ordinal", -1, "Spectrum ordinal (0-based)")
	spectrumCmd.Flags().StringVar(&nativeID, "id", "", "Spectrum native id (e.g. scan=5)")
	spectrumCmd.Flags().StringVar(&spectrumDetail, "detail", "full", "Detail level: instant, fast, full or data")
	spectrumCmd.Flags().StringVar(&centroidLevels, "centroid-levels", "", "MS levels to centroid (e.g. 1-2,4)")
	spectrumCmd.Flags().Float64Var(&noiseFloor, "noise-floor", 0, "Minimum apex intensity for centroiding")
	spectrumCmd.Flags().StringVar(&refineWindow, "refine-window", "", "Apex refinement window (e.g. 0.1mz or 5ppm)")

	// Export command flags
	exportCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output library file (required)")
	exportCmd.Flags().StringVar(&exportDetail, "detail", "data", "Detail level: instant, fast, full or data")
	exportCmd.Flags().StringVar(&centroidLevels, "centroid-levels", "", "MS levels to centroid (e.g. 1-2,4)")
	exportCmd.Flags().Float64Var(&noiseFloor, "noise-floor", 0, "Minimum apex intensity for centroiding")
	exportCmd.Flags().StringVar(&refineWindow, "refine-window", "", "Apex refinement window (e.g. 0.1mz or 5ppm)")
	exportCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Concurrent materializations")

	exportCmd.MarkFlagRequired("out")
}

// Vendor dataset types that are recognized but have no reader in this
// build. They are served by the capability-less provider, so that the
// failure carries the reason instead of a generic resolver error.
var vendorExts = map[string]string{
	".raw":  "Thermo raw reader",
	".wiff": "Sciex wiff reader",
	".d":    "Agilent/Bruker directory reader",
	".baf":  "Bruker baf reader",
}

func openProvider(root string) (msdata.RawProvider, error) {
	if reason, ok := vendorExts[strings.ToLower(filepath.Ext(root))]; ok {
		return msdata.Unavailable{Path: root, Reason: reason + " not configured"}, nil
	}
	return mzml.OpenDataSet(root)
}

func parseDetail(name string) (msdata.DetailLevel, error) {
	switch name {
	case "instant":
		return msdata.DetailInstantMetadata, nil
	case "fast":
		return msdata.DetailFastMetadata, nil
	case "full":
		return msdata.DetailFullMetadata, nil
	case "data":
		return msdata.DetailFullData, nil
	}
	return 0, fmt.Errorf("invalid detail level %q, must be instant, fast, full or data", name)
}

// centroidConfig builds the level set and peak picker from the shared
// centroiding flags. An empty --centroid-levels disables centroiding.
func centroidConfig() (*msdata.LevelSet, peaks.PeakPicker, error) {
	picker := peaks.PeakPicker{NoiseFloor: noiseFloor}
	if refineWindow != "" {
		tol, err := peaks.ParseMZTolerance(refineWindow)
		if err != nil {
			return nil, picker, err
		}
		picker.Window = tol
	}
	if centroidLevels == "" {
		return nil, picker, nil
	}
	levels, err := msdata.ParseLevelSet(centroidLevels)
	if err != nil {
		return nil, picker, err
	}
	return levels, picker, nil
}
