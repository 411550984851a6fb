package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values over [lo, hi]. Both endpoints
// are exact.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return pin(floats.Span(make([]float64, n), lo, hi), lo, hi)
}

// Logspace returns n logarithmically spaced values over [lo, hi]. Both
// endpoints are exact.
func Logspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return pin(floats.LogSpan(make([]float64, n), lo, hi), lo, hi)
}

func pin(xs []float64, lo, hi float64) []float64 {
	xs[0], xs[len(xs)-1] = lo, hi
	return xs
}

// LogLinSpacing returns nLog-1 logarithmically spaced values over
// [logStart, linStart) followed by nLin evenly spaced values over
// [linStart, linEnd]. The two segments join without repeating linStart.
func LogLinSpacing(logStart, linStart, linEnd float64, nLog, nLin int) []float64 {
	out := make([]float64, 0, max(nLog-1, 0)+max(nLin, 0))
	if nLog > 1 {
		step := (math.Log(linStart) - math.Log(logStart)) / float64(nLog-1)
		out = append(out, logStart)
		for i := 1; i < nLog-1; i++ {
			out = append(out, math.Exp(math.Log(logStart)+float64(i)*step))
		}
	}
	return append(out, Linspace(linStart, linEnd, nLin)...)
}
