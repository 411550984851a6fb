package integrators

import (
	"errors"
	"fmt"
	"math"
)

// SolveConfig bounds an adaptive integration.
type SolveConfig struct {
	Tolerance float64
	InitialDt float64
	MinDt     float64
	MaxSteps  int
}

func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		Tolerance: 1e-6,
		InitialDt: 1e-3,
		MinDt:     1e-12,
		MaxSteps:  100000,
	}
}

// Solve integrates sys from (x0, t0) and returns the solution at each of
// the increasing times ts, all of which must be >= t0. Steps are clipped
// so every output time is hit exactly.
func Solve(integ AdaptiveIntegrator, sys System, x0 []float64, t0 float64, ts []float64, cfg SolveConfig) ([][]float64, error) {
	out := make([][]float64, len(ts))
	x := append([]float64(nil), x0...)
	t := t0
	dt := cfg.InitialDt
	steps := 0

	for i, target := range ts {
		if target < t {
			return nil, fmt.Errorf("output time %g precedes current time %g", target, t)
		}
		for t < target {
			if steps >= cfg.MaxSteps {
				return nil, ErrTooManySteps
			}
			steps++

			h := math.Min(dt, target-t)
			xNew, dtNext, err := integ.StepAdaptive(sys, x, t, h, cfg.Tolerance)
			if errors.Is(err, ErrStepRejected) {
				if dtNext < cfg.MinDt {
					return nil, ErrStepTooSmall
				}
				dt = dtNext
				continue
			}
			if err != nil {
				return nil, err
			}
			if !finite(xNew) {
				return nil, ErrInvalidState
			}

			x = xNew
			t += h
			if target-t < cfg.MinDt {
				t = target
			}
			dt = dtNext
		}
		out[i] = append([]float64(nil), x...)
	}

	return out, nil
}

// SolveFixed integrates sys with constant steps of cfg.InitialDt, shortened
// where needed to land on each output time. Tolerance and MinDt are unused.
func SolveFixed(integ Integrator, sys System, x0 []float64, t0 float64, ts []float64, cfg SolveConfig) ([][]float64, error) {
	if !(cfg.InitialDt > 0) {
		return nil, fmt.Errorf("fixed step %g must be positive", cfg.InitialDt)
	}
	out := make([][]float64, len(ts))
	x := append([]float64(nil), x0...)
	t := t0
	steps := 0

	for i, target := range ts {
		if target < t {
			return nil, fmt.Errorf("output time %g precedes current time %g", target, t)
		}
		for t < target {
			if steps >= cfg.MaxSteps {
				return nil, ErrTooManySteps
			}
			steps++

			h := math.Min(cfg.InitialDt, target-t)
			x = integ.Step(sys, x, t, h)
			if !finite(x) {
				return nil, ErrInvalidState
			}
			t += h
			if target-t < 1e-12*math.Max(1, math.Abs(target)) {
				t = target
			}
		}
		out[i] = append([]float64(nil), x...)
	}

	return out, nil
}

func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
