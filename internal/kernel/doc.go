// Package kernel is the native numeric kernel behind halokit.
//
// The kernel exposes every physics query as a pair of entry points that
// follow one contract:
//
//	scalar(c, x, [extra,] status) float64
//	vector(c, [extra,] xs, n, status) []float64
//
// where status is an in/out integer. On failure an entry point sets a
// nonzero code from package status and records a message on the
// [Cosmology] handle. Callers are expected to go through package dispatch,
// which translates codes into errors; raw codes never leave that layer.
//
// The numerics (splines, quadrature, FFT, ODE growth) are a reference
// implementation built on gonum and the RK45 integrator. They model a
// wCDM background without radiation or massive neutrinos and a BBKS linear
// power spectrum normalized to sigma8.
//
// # Errors and debug mode
//
// By default a handle retains only the most recent error message. If
// several calls fail before the caller checks, earlier messages are lost.
// [SetDebugPolicy] makes the kernel log every error through zap as it is
// raised, which helps when failures overlap.
//
// # Thread Safety
//
// A handle may be queried concurrently once its parameters are fixed;
// spline caches are built under a mutex. Writing GSL or Spline parameters,
// including through params.Config.Populate, must be serialized by the
// caller against every other use of the handle.
package kernel
