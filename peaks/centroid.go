package peaks

import (
	"fmt"
	"math"
	"sort"
)

// PeakPicker reduces a profile of (m/z, intensity) samples to centroided
// peaks. Local maxima above the noise floor seed the peaks, the apex is
// refined with a magnitude Lorentzian fitted over the refinement window,
// and the raw apex is kept whenever the fit is not possible.
type PeakPicker struct {
	// NoiseFloor is the minimum intensity for a sample to seed a peak.
	NoiseFloor float64
	// Window bounds the samples around an apex used for refinement.
	// The zero window uses the apex and its direct neighbours.
	Window MZTolerance
}

// Centroid reduces the profile arrays to peak apex arrays. The x values
// must be in ascending order.
func (pp PeakPicker) Centroid(xs, ys []float64) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("peaks: %d x values for %d intensities", len(xs), len(ys))
	}
	var cx, cy []float64
	for i := 1; i < len(xs)-1; i++ {
		if ys[i] <= pp.NoiseFloor {
			continue
		}
		if !(ys[i-1] < ys[i] && ys[i] >= ys[i+1]) {
			continue
		}
		x, y := pp.refine(xs, ys, i)
		cx = append(cx, x)
		cy = append(cy, y)
	}
	return cx, cy, nil
}

// refine fits a Lorentzian through the window around apex i and returns
// the fitted apex. Samples are shifted to the apex before fitting to
// keep the normal equations well conditioned.
func (pp PeakPicker) refine(xs, ys []float64, i int) (float64, float64) {
	lo, hi := pp.window(xs, i)
	samples := make([]Sample, 0, hi-lo)
	for j := lo; j < hi; j++ {
		if ys[j] > 0 {
			samples = append(samples, Sample{X: xs[j] - xs[i], Y: ys[j]})
		}
	}
	ml, err := FitMagnitudeLorentzian(samples)
	if err != nil {
		return xs[i], ys[i]
	}
	coef := ml.Coefficients()
	center := ml.Center()
	// The apex queries require a > 0, and a fit that puts the center
	// outside its own window is no refinement
	if coef[0] <= 0 || center < xs[lo]-xs[i] || center > xs[hi-1]-xs[i] {
		return xs[i], ys[i]
	}
	y := ml.Value(center)
	if math.IsNaN(y) || math.IsInf(y, 0) || y <= 0 {
		return xs[i], ys[i]
	}
	return xs[i] + center, y
}

// window returns the half open sample range around apex i that lies
// inside the refinement window.
func (pp PeakPicker) window(xs []float64, i int) (int, int) {
	if pp.Window.Value <= 0 {
		return i - 1, i + 2
	}
	lo := sort.Search(len(xs), func(j int) bool { return xs[j] >= pp.Window.SubTolerance(xs[i]) })
	hi := sort.Search(len(xs), func(j int) bool { return xs[j] > pp.Window.AddTolerance(xs[i]) })
	return lo, hi
}
