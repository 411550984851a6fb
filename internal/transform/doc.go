// Package transform validates and forwards 1-D resampling, FFTLog
// transforms and batched spline integration to the kernel.
//
// Every function checks dimensionality and length consistency first, so a
// malformed input fails with status.ErrShape or status.ErrType before any
// kernel call. Kernel failures come back as *status.KernelError.
package transform
