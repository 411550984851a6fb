package transform

import (
	"fmt"
	"strings"

	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

// Extrap selects how Resample treats points outside the input range.
type Extrap int

const (
	ExtrapNone     = Extrap(kernel.ExtrapNone)
	ExtrapConstant = Extrap(kernel.ExtrapConstant)
	ExtrapLinxLiny = Extrap(kernel.ExtrapLinxLiny)
	ExtrapLinxLogy = Extrap(kernel.ExtrapLinxLogy)
	ExtrapLogxLiny = Extrap(kernel.ExtrapLogxLiny)
	ExtrapLogxLogy = Extrap(kernel.ExtrapLogxLogy)
)

var extrapNames = []string{"none", "constant", "linx_liny", "linx_logy", "logx_liny", "logx_logy"}

func (e Extrap) String() string {
	if e < 0 || int(e) >= len(extrapNames) {
		return fmt.Sprintf("Extrap(%d)", int(e))
	}
	return extrapNames[e]
}

// ParseExtrap maps a name such as "logx_logy" to its Extrap.
func ParseExtrap(name string) (Extrap, error) {
	for i, n := range extrapNames {
		if strings.EqualFold(n, name) {
			return Extrap(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown extrapolation %q", status.ErrType, name)
}

// ResampleOptions chooses the extrapolation at each end. FillLo and FillHi
// are used by ExtrapConstant.
type ResampleOptions struct {
	ExtrapLo, ExtrapHi Extrap
	FillLo, FillHi     float64
}

type resampleArgs struct {
	xIn, yIn []float64
	opts     ResampleOptions
}

var resampleEntry = dispatch.Entry[*kernel.Cosmology, resampleArgs]{
	Scalar: func(h *kernel.Cosmology, x float64, p resampleArgs, st *int) float64 {
		out := resampleVec(h, p, []float64{x}, 1, st)
		if len(out) != 1 {
			return 0
		}
		return out[0]
	},
	Vector: resampleVec,
}

func resampleVec(h *kernel.Cosmology, p resampleArgs, xs []float64, n int, st *int) []float64 {
	o := p.opts
	return kernel.Array1DResample(h, p.xIn, p.yIn, xs, o.FillLo, o.FillHi, int(o.ExtrapLo), int(o.ExtrapHi), n, st)
}

// Resample interpolates (xIn, yIn) onto xOut. Outputs at input knots equal
// the input values exactly.
func Resample(xIn, yIn, xOut []float64, opts ResampleOptions) ([]float64, error) {
	if len(xIn) != len(yIn) {
		return nil, fmt.Errorf("%w: x has %d samples, y has %d", status.ErrShape, len(xIn), len(yIn))
	}
	if len(xIn) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 input samples, got %d", status.ErrShape, len(xIn))
	}
	out, err := dispatch.Call(resampleEntry, kernel.Detached(), dispatch.Sequence(xOut), resampleArgs{xIn: xIn, yIn: yIn, opts: opts})
	if err != nil {
		return nil, err
	}
	return out.Slice(), nil
}
