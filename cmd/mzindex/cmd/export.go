package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/524D/mzindex/msdata"
	"github.com/524D/mzindex/speclib"
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Export materialized spectra to a SQLite library",
	Long: `Export materializes every spectrum of the dataset and writes the
records to a SQLite spectral library file.

Examples:
  mzindex export run1.mzML --out run1.db
  mzindex export ./acquisitions/ --out lib.db --centroid-levels 1-2 --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dl, err := parseDetail(exportDetail)
	if err != nil {
		return err
	}
	levels, picker, err := centroidConfig()
	if err != nil {
		return err
	}
	p, err := openProvider(args[0])
	if err != nil {
		return err
	}
	var opts []msdata.Option
	if levels != nil {
		opts = append(opts, msdata.WithCentroider(picker))
	}
	l := msdata.NewSpectrumList(p, opts...)

	all, err := l.AllSpectra(dl, levels, workers)
	if err != nil {
		return err
	}

	w, err := speclib.NewWriter(outputFile, args[0])
	if err != nil {
		return err
	}
	for _, s := range all {
		if err := w.WriteSpectrum(s); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Finalize(); err != nil {
		return err
	}
	fmt.Printf("Exported %d spectra to %s\n", len(all), outputFile)
	return nil
}
