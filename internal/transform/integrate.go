package transform

import (
	"fmt"

	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

// SplineIntegrate integrates each curve of ys, sampled on x, from a to b.
// The limits must be scalars. A single curve gives a scalar, a batch gives
// one value per curve.
func SplineIntegrate(x []float64, ys Curves, a, b dispatch.Value) (dispatch.Value, error) {
	m, n := ys.Dims()
	if n != len(x) {
		return dispatch.Value{}, fmt.Errorf("%w: x should have %d elements, got %d", status.ErrShape, n, len(x))
	}
	if !a.IsScalar() || !b.IsScalar() {
		return dispatch.Value{}, fmt.Errorf("%w: integration limits should be scalar", status.ErrType)
	}

	h := kernel.Detached()
	st := status.OK
	out := kernel.SplineIntegrate(h, x, ys.flatten(), m, a.Float(), b.Float(), m, &st)
	if err := status.Check(st, h); err != nil {
		return dispatch.Value{}, err
	}
	if len(out) != m {
		return dispatch.Value{}, fmt.Errorf("%w: kernel returned %d integrals for %d curves", status.ErrShape, len(out), m)
	}
	if !ys.IsBatch() {
		return dispatch.Scalar(out[0]), nil
	}
	return dispatch.Sequence(out), nil
}
