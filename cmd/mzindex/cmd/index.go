package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/524D/mzindex/msdata"
	"github.com/524D/mzindex/mzml"
)

var indexCmd = &cobra.Command{
	Use:   "index [dataset]",
	Short: "Build the spectrum index of a dataset and list it",
	Long: `Index enumerates every spectrum of the dataset, assigns dense
ordinals and native ids, and prints the resulting table.

Examples:
  mzindex index run1.mzML
  mzindex index ./acquisitions/`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	p, err := openProvider(args[0])
	if err != nil {
		return err
	}
	l := msdata.NewSpectrumList(p)
	n, err := l.Size()
	if err != nil {
		return err
	}
	paths, err := l.SourcePaths()
	if err != nil {
		return err
	}
	fmt.Printf("%d spectra in %d source(s)\n", n, len(paths))
	if ds, ok := p.(*mzml.DataSet); ok {
		debugLogInstruments(ds)
	}
	for i := 0; i < n; i++ {
		entry, err := l.Identity(i)
		if err != nil {
			return err
		}
		source := filepath.Base(paths[entry.Source])
		if entry.Collection == msdata.CollectionNone {
			fmt.Printf("%6d  %-24s  %s scan %d\n",
				entry.Index, entry.NativeID, source, entry.Scan)
		} else {
			fmt.Printf("%6d  %-24s  %s collection %d scan %d\n",
				entry.Index, entry.NativeID, source, entry.Collection, entry.Scan)
		}
	}
	return nil
}
