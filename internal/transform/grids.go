package transform

import (
	"fmt"
	"math"

	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/params"
)

// LogLinSpacing returns nLog-1 log-spaced values from logStart up to (but
// excluding) linStart, then nLin evenly spaced values over
// [linStart, linEnd].
func LogLinSpacing(logStart, linStart, linEnd float64, nLog, nLin int) ([]float64, error) {
	switch {
	case nLog < 1 || nLin < 2:
		return nil, fmt.Errorf("loglin spacing: need nLog >= 1 and nLin >= 2, got %d and %d", nLog, nLin)
	case !(logStart > 0 && logStart < linStart && linStart < linEnd):
		return nil, fmt.Errorf("loglin spacing: need 0 < %g < %g < %g", logStart, linStart, linEnd)
	}
	return kernel.LogLinSpacing(logStart, linStart, linEnd, nLog, nLin), nil
}

// PkSplineA returns the scale factor sampling of power spectrum splines.
func PkSplineA(cfg *params.Config) ([]float64, error) {
	v, err := values(cfg.Spline, "A_SPLINE_MINLOG_PK", "A_SPLINE_MIN_PK", "A_SPLINE_MAX", "A_SPLINE_NLOG_PK", "A_SPLINE_NA_PK")
	if err != nil {
		return nil, err
	}
	return LogLinSpacing(v[0], v[1], v[2], int(v[3]), int(v[4]))
}

// PkSplineLK returns the ln(k) sampling of power spectrum splines: N_K
// points per decade between K_MIN and K_MAX.
func PkSplineLK(cfg *params.Config) ([]float64, error) {
	v, err := values(cfg.Spline, "K_MIN", "K_MAX", "N_K")
	if err != nil {
		return nil, err
	}
	kmin, kmax, perDecade := v[0], v[1], v[2]
	if !(kmin > 0 && kmax > kmin) {
		return nil, fmt.Errorf("pk spline: need 0 < K_MIN < K_MAX, got %g and %g", kmin, kmax)
	}
	nk := int(math.Ceil(math.Log10(kmax/kmin) * perDecade))
	if nk < 2 {
		return nil, fmt.Errorf("pk spline: %d wavenumbers", nk)
	}
	return kernel.Linspace(math.Log(kmin), math.Log(kmax), nk), nil
}

func values(s *params.Struct, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, err := s.Get(k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
