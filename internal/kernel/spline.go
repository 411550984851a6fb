package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Spline type names accepted by the *_SPLINE_TYPE parameters.
const (
	SplineLinear   = "linear"
	SplineCubic    = "cspline"
	SplineAkima    = "akima"
	SplineSteffen  = "steffen"
	SplineNotAKnot = "notaknot"
	SplineBicubic  = "bicubic"
)

// SplineTypes lists the accepted spline type names.
func SplineTypes() []string {
	return []string{SplineLinear, SplineCubic, SplineAkima, SplineSteffen, SplineNotAKnot, SplineBicubic}
}

// newSpline fits a 1-D interpolator of the named kind. Bicubic names a 2-D
// scheme and degrades to a natural cubic along one axis.
func newSpline(kind string, xs, ys []float64) (interp.Predictor, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d knots but %d values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("need at least 2 knots, got %d", len(xs))
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return nil, fmt.Errorf("non-finite sample at index %d", i)
		}
		if i > 0 && x <= xs[i-1] {
			return nil, fmt.Errorf("knots not strictly increasing at index %d", i)
		}
	}

	var fp interp.FittablePredictor
	switch kind {
	case SplineLinear:
		fp = &interp.PiecewiseLinear{}
	case SplineCubic, SplineBicubic:
		fp = &interp.NaturalCubic{}
	case SplineAkima:
		fp = &interp.AkimaSpline{}
	case SplineSteffen:
		fp = &interp.FritschButland{}
	case SplineNotAKnot:
		if len(xs) < 3 {
			fp = &interp.NaturalCubic{}
		} else {
			fp = &interp.NotAKnotCubic{}
		}
	default:
		return nil, fmt.Errorf("unknown spline type %q", kind)
	}

	if err := fp.Fit(xs, ys); err != nil {
		return nil, err
	}
	return fp, nil
}
