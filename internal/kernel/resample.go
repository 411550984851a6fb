package kernel

import (
	"math"
	"sort"

	"github.com/san-kum/halokit/internal/status"
)

// Extrapolation rules outside the input range of Array1DResample.
const (
	ExtrapNone = iota
	ExtrapConstant
	ExtrapLinxLiny
	ExtrapLinxLogy
	ExtrapLogxLiny
	ExtrapLogxLogy
)

// Detached returns a handle with no cosmology attached, used to collect
// status messages from cosmology-independent routines.
func Detached() *Cosmology {
	return &Cosmology{GSL: DefaultGSLParams(), Spline: DefaultSplineParams()}
}

// Array1DResample interpolates (xIn, yIn) onto xOut[:n] with an Akima
// spline. Points below or above the input range follow extLo and extHi;
// the constant rule uses fillLo and fillHi. Outputs at input knots equal
// the input values exactly.
func Array1DResample(c *Cosmology, xIn, yIn, xOut []float64, fillLo, fillHi float64, extLo, extHi, n int, st *int) []float64 {
	if !checkLength(c, "Array1DResample", xOut, n, st) {
		return nil
	}
	for _, e := range []int{extLo, extHi} {
		if e < ExtrapNone || e > ExtrapLogxLogy {
			c.raise(st, status.Parameters, "Array1DResample: unknown extrapolation rule %d", e)
			return nil
		}
	}
	spl, err := newSpline(SplineAkima, xIn, yIn)
	if err != nil {
		c.raise(st, status.Spline, "Array1DResample: %v", err)
		return nil
	}

	m := len(xIn)
	x0, x1 := xIn[0], xIn[1]
	y0, y1 := yIn[0], yIn[1]
	xa, xb := xIn[m-2], xIn[m-1]
	ya, yb := yIn[m-2], yIn[m-1]

	return parallelEval(n, st, func(i int, st *int) float64 {
		x := xOut[i]
		switch {
		case math.IsNaN(x):
			c.raise(st, status.SplineEv, "Array1DResample: output point %d is NaN", i)
			return math.NaN()
		case x < x0:
			return extrapolate(c, x, x0, x1, y0, y1, extLo, fillLo, st)
		case x > xb:
			return extrapolate(c, x, xb, xa, yb, ya, extHi, fillHi, st)
		}
		if j := sort.SearchFloat64s(xIn, x); j < m && xIn[j] == x {
			return yIn[j]
		}
		return spl.Predict(x)
	})
}

// extrapolate continues the secant through the edge knot (xe, ye) and its
// neighbour (xn, yn) in the coordinates the rule names.
func extrapolate(c *Cosmology, x, xe, xn, ye, yn float64, rule int, fill float64, st *int) float64 {
	logX := rule == ExtrapLogxLiny || rule == ExtrapLogxLogy
	logY := rule == ExtrapLinxLogy || rule == ExtrapLogxLogy

	switch rule {
	case ExtrapNone:
		c.raise(st, status.SplineEv, "Array1DResample: x=%g outside input range and extrapolation is disabled", x)
		return math.NaN()
	case ExtrapConstant:
		return fill
	}

	if logX && (x <= 0 || xe <= 0 || xn <= 0) {
		c.raise(st, status.SplineEv, "Array1DResample: log-x extrapolation needs positive x, got %g", x)
		return math.NaN()
	}
	if logY && (ye <= 0 || yn <= 0) {
		c.raise(st, status.SplineEv, "Array1DResample: log-y extrapolation needs positive edge values")
		return math.NaN()
	}

	tx, te, tn := x, xe, xn
	if logX {
		tx, te, tn = math.Log(x), math.Log(xe), math.Log(xn)
	}
	ve, vn := ye, yn
	if logY {
		ve, vn = math.Log(ye), math.Log(yn)
	}

	v := ve + (vn-ve)/(tn-te)*(tx-te)
	if logY {
		return math.Exp(v)
	}
	return v
}
