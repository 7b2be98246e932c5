package peaks

import (
	"math"
)

// MagnitudeLorentzian models the magnitude profile of a Lorentzian peak,
//
//	y(x) = 1/sqrt(a*x^2 + b*x + c)
//
// On transformed samples (x, 1/y^2) the model is the parabola
// a*x^2 + b*x + c, so the fit has a closed form. The transformed
// samples are weighted y^6/4, which propagates the measurement
// uncertainty of y through the 1/y^2 transform and keeps the reported
// residual meaningful in the magnitude domain.
type MagnitudeLorentzian struct {
	a, b, c           float64
	leastSquaresError float64
}

// NewMagnitudeLorentzian returns the model with the given coefficients,
// e.g. to reload a previously fitted peak. Exactly 3 coefficients
// (a, b, c) are required.
func NewMagnitudeLorentzian(coef []float64) (MagnitudeLorentzian, error) {
	if len(coef) != 3 {
		return MagnitudeLorentzian{}, ErrCoefficientCount
	}
	return MagnitudeLorentzian{a: coef[0], b: coef[1], c: coef[2]}, nil
}

// FitMagnitudeLorentzian fits the model to magnitude samples. The sample
// magnitudes must be strictly positive. At least 3 samples with distinct
// x values are required, fewer return ErrInsufficientData.
func FitMagnitudeLorentzian(samples []Sample) (MagnitudeLorentzian, error) {
	transformed := make([]Sample, len(samples))
	weights := make([]float64, len(samples))
	for i, s := range samples {
		transformed[i] = Sample{X: s.X, Y: 1 / (s.Y * s.Y)}
		weights[i] = math.Pow(s.Y, 6) / 4
	}

	p, err := FitParabola(transformed, weights)
	if err != nil {
		return MagnitudeLorentzian{}, err
	}

	ml := MagnitudeLorentzian{}
	ml.a, ml.b, ml.c = p.Coefficients()
	for _, s := range samples {
		diff := s.Y - ml.Value(s.X)
		ml.leastSquaresError += diff * diff
	}
	return ml, nil
}

// Value evaluates the fitted magnitude at x.
func (ml MagnitudeLorentzian) Value(x float64) float64 {
	return 1 / math.Sqrt(ml.a*x*x+ml.b*x+ml.c)
}

// LeastSquaresError returns the sum of squared residuals between the
// sample magnitudes and the model, computed once at fit time. Models
// constructed directly from coefficients report 0.
func (ml MagnitudeLorentzian) LeastSquaresError() float64 {
	return ml.leastSquaresError
}

// Coefficients returns a, b and c.
func (ml MagnitudeLorentzian) Coefficients() []float64 {
	return []float64{ml.a, ml.b, ml.c}
}

// Center returns the peak position -b/(2a).
// Center, Alpha and Tau are only defined when a > 0; the caller must
// check this before relying on them.
func (ml MagnitudeLorentzian) Center() float64 {
	return -ml.b / (2 * ml.a)
}

// Alpha returns the peak width parameter 2*pi/sqrt(a).
func (ml MagnitudeLorentzian) Alpha() float64 {
	return 2 * math.Pi / math.Sqrt(ml.a)
}

// Tau returns the normalized peak amplitude, the fitted magnitude at the
// center divided by Alpha.
func (ml MagnitudeLorentzian) Tau() float64 {
	return ml.Value(ml.Center()) / ml.Alpha()
}
