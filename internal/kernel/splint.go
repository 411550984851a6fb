package kernel

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/halokit/internal/status"
)

// SplineIntegrate integrates each of nCurves curves, sampled on x and
// stored back to back in ys, over [a, b] using a natural cubic spline.
// outSize must equal nCurves. The limits must lie within the range of x.
func SplineIntegrate(c *Cosmology, x, ys []float64, nCurves int, a, b float64, outSize int, st *int) []float64 {
	n := len(x)
	switch {
	case nCurves < 1 || len(ys) != nCurves*n:
		c.raise(st, status.Parameters, "SplineIntegrate: %d values do not form %d curves of %d samples", len(ys), nCurves, n)
		return nil
	case outSize != nCurves:
		c.raise(st, status.Parameters, "SplineIntegrate: output size %d, want %d", outSize, nCurves)
		return nil
	case n < 2:
		c.raise(st, status.Spline, "SplineIntegrate: need at least 2 samples, got %d", n)
		return nil
	case math.IsNaN(a) || math.IsNaN(b) || a < x[0] || b > x[n-1] || a > x[n-1] || b < x[0]:
		c.raise(st, status.SplineEv, "SplineIntegrate: limits [%g, %g] outside sampled range [%g, %g]", a, b, x[0], x[n-1])
		return nil
	}

	out := make([]float64, nCurves)
	var g errgroup.Group
	for j := 0; j < nCurves; j++ {
		g.Go(func() error {
			spl, err := newSpline(SplineCubic, x, ys[j*n:(j+1)*n])
			if err != nil {
				return fmt.Errorf("curve %d: %w", j, err)
			}
			out[j] = integrateCubic(spl, x, a, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.raise(st, status.Spline, "SplineIntegrate: %v", err)
		return nil
	}
	return out
}

// integrateCubic integrates a piecewise cubic exactly with one
// Gauss-Legendre rule per knot interval.
func integrateCubic(spl interp.Predictor, x []float64, a, b float64) float64 {
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}
	i := sort.SearchFloat64s(x, a)
	if i > 0 && (i == len(x) || x[i] > a) {
		i--
	}

	var sum float64
	lo := a
	for ; i < len(x)-1 && lo < b; i++ {
		hi := math.Min(x[i+1], b)
		if hi > lo {
			sum += quad.Fixed(spl.Predict, lo, hi, 4, quad.Legendre{}, 0)
		}
		lo = hi
	}
	return sign * sum
}
