package peaks

import (
	"errors"
	"testing"
)

func quadSamples(a, b, c float64, xs []float64) []Sample {
	samples := make([]Sample, len(xs))
	for i, x := range xs {
		samples[i] = Sample{X: x, Y: a*x*x + b*x + c}
	}
	return samples
}

func TestFitParabolaExact(t *testing.T) {
	samples := quadSamples(2, 3, 4, []float64{-1, 0, 1, 2})
	p, err := FitParabola(samples, nil)
	if err != nil {
		t.Fatalf("FitParabola: error return %v", err)
	}
	a, b, c := p.Coefficients()
	const tol = 1e-9
	if a < 2-tol || a > 2+tol || b < 3-tol || b > 3+tol || c < 4-tol || c > 4+tol {
		t.Errorf("Coefficients: (%v, %v, %v), should be (2, 3, 4)", a, b, c)
	}
	if v := p.Value(0.5); v < 6-tol || v > 6+tol {
		t.Errorf("Value(0.5): %v, should be 6", v)
	}
	if ctr := p.Center(); ctr < -0.75-tol || ctr > -0.75+tol {
		t.Errorf("Center: %v, should be -0.75", ctr)
	}
}

func TestFitParabolaWeighted(t *testing.T) {
	// Noiseless samples: any positive weighting must recover the
	// same coefficients
	samples := quadSamples(-1, 2, 10, []float64{0, 1, 2, 3, 4})
	weights := []float64{1, 10, 100, 5, 0.5}
	p, err := FitParabola(samples, weights)
	if err != nil {
		t.Fatalf("FitParabola: error return %v", err)
	}
	a, b, c := p.Coefficients()
	const tol = 1e-9
	if a < -1-tol || a > -1+tol || b < 2-tol || b > 2+tol || c < 10-tol || c > 10+tol {
		t.Errorf("Coefficients: (%v, %v, %v), should be (-1, 2, 10)", a, b, c)
	}
}

func TestFitParabolaErrors(t *testing.T) {
	samples := quadSamples(1, 0, 0, []float64{0, 1, 2})

	// Test case 1: weight count mismatch
	_, err := FitParabola(samples, []float64{1, 2})
	if !errors.Is(err, ErrWeightCount) {
		t.Errorf("Expected ErrWeightCount, got: %v", err)
	}

	// Test case 2: no samples
	_, err = FitParabola(nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got: %v", err)
	}

	// Test case 3: three samples but only two distinct x
	dup := []Sample{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 3}}
	_, err = FitParabola(dup, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got: %v", err)
	}
}
