// Package integrators provides Runge-Kutta steppers for the first-order ODE
// systems solved inside the numeric kernel, such as the linear growth
// equation.
package integrators

import "errors"

var (
	// ErrStepRejected indicates the embedded error estimate exceeded the
	// tolerance. The returned step size is the suggested retry.
	ErrStepRejected = errors.New("integrators: step rejected (error above tolerance)")

	// ErrStepTooSmall indicates the adaptive step collapsed below the minimum.
	ErrStepTooSmall = errors.New("integrators: adaptive step below minimum")

	// ErrInvalidState indicates the solution became NaN or Inf.
	ErrInvalidState = errors.New("integrators: invalid state (NaN or Inf detected)")

	// ErrTooManySteps indicates the step budget was exhausted.
	ErrTooManySteps = errors.New("integrators: step budget exhausted")
)

// System is a first-order ODE dx/dt = f(x, t).
type System interface {
	Derive(x []float64, t float64) []float64
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(x []float64, t float64) []float64

func (f SystemFunc) Derive(x []float64, t float64) []float64 { return f(x, t) }

type Integrator interface {
	Step(sys System, x []float64, t, dt float64) []float64
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x []float64, t, dt, tol float64) ([]float64, float64, error)
}
