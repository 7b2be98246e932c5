package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/524D/mzindex/msdata"
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum [dataset]",
	Short: "Materialize one spectrum record",
	Long: `Spectrum materializes a single spectrum, addressed by ordinal or by
native id, at the requested detail level.

Examples:
  mzindex spectrum run1.mzML --ordinal 0
  mzindex spectrum run1.mzML --id scan=5 --detail data
  mzindex spectrum run1.mzML --id scan=5 --detail data --centroid-levels 1 --refine-window 0.1mz`,
	Args: cobra.ExactArgs(1),
	RunE: runSpectrum,
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	dl, err := parseDetail(spectrumDetail)
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

	i := ordinal
	if nativeID != "" {
		if i >= 0 {
			return fmt.Errorf("use either --ordinal or --id, not both")
		}
		if i, err = l.Find(nativeID); err != nil {
			return err
		}
	}
	if i < 0 {
		return fmt.Errorf("one of --ordinal or --id is required")
	}

	s, err := l.SpectrumCentroided(i, dl, levels)
	if err != nil {
		return err
	}
	printSpectrum(s, dl)
	return nil
}

func printSpectrum(s msdata.Spectrum, dl msdata.DetailLevel) {
	fmt.Printf("Index:       %d\n", s.Index)
	fmt.Printf("Native id:   %s\n", s.NativeID)
	fmt.Printf("Source:      %s\n", s.SourcePath)
	if s.Collection != msdata.CollectionNone {
		fmt.Printf("Collection:  %d\n", s.Collection)
	}
	fmt.Printf("Scan:        %d\n", s.Scan)
	if dl >= msdata.DetailFastMetadata {
		fmt.Printf("MS level:    %d\n", s.Level)
		fmt.Printf("Retention:   %g s\n", s.RetentionTime)
		if s.Polarity != "" {
			fmt.Printf("Polarity:    %s\n", s.Polarity)
		}
	}
	if dl >= msdata.DetailFullMetadata {
		if s.ScanBegin != 0 || s.ScanEnd != 0 {
			fmt.Printf("Scan window: %g to %g m/z\n", s.ScanBegin, s.ScanEnd)
		}
		fmt.Println("Parameters:")
		for _, p := range s.Parameters {
			fmt.Printf("  %-20s %s\n", p.Name, p.Value)
		}
	}
	if dl >= msdata.DetailFullData {
		fmt.Printf("Centroided:  %v\n", s.Centroided)
		fmt.Printf("Peaks:       %d\n", len(s.Peaks))
		for _, p := range s.Peaks {
			fmt.Printf("  %12.5f  %14.2f\n", p.Mz, p.Intens)
		}
	}
}
