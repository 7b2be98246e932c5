// Package peaks provides closed-form peak-shape fitting for mass
// spectrometry data: a weighted least-squares parabola, a magnitude
// Lorentzian peak model derived from it, m/z tolerance arithmetic and
// a profile centroider built on top of the fitter.
package peaks

import "errors"

// Sample is a single (x, y) observation used for curve fitting.
// For the Lorentzian fit, Y is a magnitude and must be strictly positive.
type Sample struct {
	X float64
	Y float64
}

var (
	// ErrInsufficientData means the samples do not determine a fit
	ErrInsufficientData = errors.New("peaks: need 3 samples with distinct x")
	// ErrCoefficientCount means the wrong number of coefficients is supplied
	ErrCoefficientCount = errors.New("peaks: 3 coefficients required")
	// ErrWeightCount means the number of weights does not match the samples
	ErrWeightCount = errors.New("peaks: weight count does not match sample count")
)
