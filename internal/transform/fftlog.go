package transform

import (
	"fmt"

	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

// FFTLog transforms every curve in frs, sampled on the logarithmic grid rs,
// with the dim-dimensional Hankel-type transform of order mu and
// power-law bias q. It returns the output wavenumbers and transformed
// curves in the shape of frs.
func FFTLog(rs []float64, frs Curves, dim, mu, q float64) ([]float64, Curves, error) {
	m, n := frs.Dims()
	switch {
	case len(rs) < 2:
		return nil, Curves{}, fmt.Errorf("%w: need at least 2 radii, got %d", status.ErrShape, len(rs))
	case n != len(rs):
		return nil, Curves{}, fmt.Errorf("%w: rs should have %d elements, got %d", status.ErrShape, n, len(rs))
	}

	h := kernel.Detached()
	st := status.OK
	out := kernel.FFTLogTransform(h, rs, frs.flatten(), m, dim, mu, q, (m+1)*n, &st)
	if err := status.Check(st, h); err != nil {
		return nil, Curves{}, err
	}
	if len(out) != (m+1)*n {
		return nil, Curves{}, fmt.Errorf("%w: kernel returned %d values, want %d", status.ErrShape, len(out), (m+1)*n)
	}
	return out[:n], frs.like(out[n:]), nil
}
