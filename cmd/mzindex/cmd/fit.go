package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/524D/mzindex/peaks"
)

var fitCmd = &cobra.Command{
	Use:   "fit [xy-file]",
	Short: "Fit a magnitude Lorentzian to x/y samples",
	Long: `Fit reads whitespace separated x/y sample pairs, one pair per line
(blank lines and lines starting with # are skipped), fits the
closed-form magnitude Lorentzian and prints the fitted peak model.
Pass - to read from standard input.

Examples:
  mzindex fit samples.txt
  mzindex fit - < samples.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func runFit(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		fl, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fl.Close()
		r = fl
	}
	samples, err := readSamples(r)
	if err != nil {
		return err
	}
	ml, err := peaks.FitMagnitudeLorentzian(samples)
	if err != nil {
		return err
	}
	coef := ml.Coefficients()
	fmt.Printf("Samples:      %d\n", len(samples))
	fmt.Printf("Coefficients: a=%g b=%g c=%g\n", coef[0], coef[1], coef[2])
	if coef[0] > 0 {
		fmt.Printf("Center:       %g\n", ml.Center())
		fmt.Printf("Height:       %g\n", ml.Value(ml.Center()))
		fmt.Printf("Alpha:        %g\n", ml.Alpha())
		fmt.Printf("Tau:          %g\n", ml.Tau())
	}
	fmt.Printf("Error:        %g\n", ml.LeastSquaresError())
	return nil
}

func readSamples(r io.Reader) ([]peaks.Sample, error) {
	var samples []peaks.Sample
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: need two values, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		samples = append(samples, peaks.Sample{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
