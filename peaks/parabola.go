package peaks

import (
	"gonum.org/v1/gonum/mat"
)

// Parabola is a quadratic y = a*x^2 + b*x + c
type Parabola struct {
	a, b, c float64
}

// NewParabola returns the parabola with the given coefficients.
func NewParabola(a, b, c float64) Parabola {
	return Parabola{a: a, b: b, c: c}
}

// FitParabola computes the weighted least squares parabola through the
// samples. A nil weights slice fits unweighted. At least 3 samples with
// distinct x values are required.
func FitParabola(samples []Sample, weights []float64) (Parabola, error) {
	if weights != nil && len(weights) != len(samples) {
		return Parabola{}, ErrWeightCount
	}
	if distinctX(samples) < 3 {
		return Parabola{}, ErrInsufficientData
	}

	// Weighted normal equations for the design matrix [x^2 x 1].
	// s[k] accumulates w*x^k, t[k] accumulates w*y*x^k
	var s [5]float64
	var t [3]float64
	for i, smp := range samples {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		xk := w
		for k := 0; k < 5; k++ {
			s[k] += xk
			if k < 3 {
				t[k] += xk * smp.Y
			}
			xk *= smp.X
		}
	}

	m := mat.NewSymDense(3, []float64{
		s[4], s[3], s[2],
		s[3], s[2], s[1],
		s[2], s[1], s[0],
	})
	rhs := mat.NewVecDense(3, []float64{t[2], t[1], t[0]})

	var coef mat.VecDense
	if err := coef.SolveVec(m, rhs); err != nil {
		// Singular or near-singular normal equations, the sample
		// geometry does not determine a parabola
		return Parabola{}, ErrInsufficientData
	}
	return Parabola{a: coef.AtVec(0), b: coef.AtVec(1), c: coef.AtVec(2)}, nil
}

// Value evaluates the parabola at x.
func (p Parabola) Value(x float64) float64 {
	return p.a*x*x + p.b*x + p.c
}

// Center returns the x position of the extremum, -b/(2a).
func (p Parabola) Center() float64 {
	return -p.b / (2 * p.a)
}

// Coefficients returns a, b and c.
func (p Parabola) Coefficients() (a, b, c float64) {
	return p.a, p.b, p.c
}

func distinctX(samples []Sample) int {
	seen := make(map[float64]struct{}, len(samples))
	for _, s := range samples {
		seen[s.X] = struct{}{}
	}
	return len(seen)
}
