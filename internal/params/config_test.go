package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

func newHandle(t *testing.T) *kernel.Cosmology {
	t.Helper()
	h, err := kernel.New(kernel.DefaultParams())
	require.NoError(t, err)
	return h
}

func TestNewConfigMatchesKernelDefaults(t *testing.T) {
	cfg := NewConfig()

	v, err := cfg.GSL.Get("INTEGRATION_SIGMAR_EPSREL")
	require.NoError(t, err)
	assert.Equal(t, kernel.DefaultGSLParams().IntegrationSigmaREpsrel, v)

	typ, err := cfg.Spline.SplineType("M_SPLINE_TYPE")
	require.NoError(t, err)
	assert.Equal(t, kernel.DefaultSplineParams().MSplineType, typ)

	assert.Len(t, cfg.GSL.Keys(), len(kernel.GSLDefaults()))
}

func TestPopulateWritesMutableKeys(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.GSL.Set("INTEGRATION_SIGMAR_EPSREL", 1e-6))
	require.NoError(t, cfg.Spline.Set("LOGM_SPLINE_NM", 60))

	h := newHandle(t)
	h.Spline.ASplineMax = 0.5
	h.Spline.MSplineType = kernel.SplineLinear

	require.NoError(t, cfg.Populate(h))
	assert.Equal(t, 1e-6, h.GSL.IntegrationSigmaREpsrel)
	assert.Equal(t, 60.0, h.Spline.LogMSplineNM)

	// Immutable keys are left alone.
	assert.Equal(t, 0.5, h.Spline.ASplineMax)
	assert.Equal(t, kernel.SplineLinear, h.Spline.MSplineType)
}

func TestPopulateIsIdempotent(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Spline.Set("K_MAX", 500))
	h := newHandle(t)

	require.NoError(t, cfg.Populate(h))
	first := h.Spline
	require.NoError(t, cfg.Populate(h))
	assert.Equal(t, first, h.Spline)
}

func TestPopulateUnknownField(t *testing.T) {
	cfg := &Config{
		GSL:    New(map[string]float64{"NOT_A_FIELD": 1}, nil),
		Spline: New(nil, nil),
	}
	err := cfg.Populate(newHandle(t))
	assert.ErrorIs(t, err, status.ErrUnknownKey)
}

func TestPopulateNilHandle(t *testing.T) {
	assert.Error(t, NewConfig().Populate(nil))
}

func TestApplyAndReload(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Apply(
		map[string]float64{"ROOT_EPSREL": 1e-6},
		map[string]float64{"N_K": 200},
	)
	require.NoError(t, err)

	v, _ := cfg.Spline.Get("N_K")
	assert.Equal(t, 200.0, v)

	err = cfg.Apply(nil, map[string]float64{"A_SPLINE_MAX": 1})
	assert.ErrorIs(t, err, status.ErrImmutableKey)

	cfg.Reload()
	v, _ = cfg.GSL.Get("ROOT_EPSREL")
	assert.Equal(t, kernel.DefaultGSLParams().RootEpsrel, v)
}

func TestPopulateDropsCachedSplines(t *testing.T) {
	h := newHandle(t)
	st := 0
	before := kernel.SigmaM(h, 1e13, 1, &st)
	require.Zero(t, st, h.StatusMessage())

	cfg := NewConfig()
	require.NoError(t, cfg.Spline.Set("LOGM_SPLINE_MAX", 12))
	require.NoError(t, cfg.Populate(h))

	kernel.SigmaM(h, 1e13, 1, &st)
	assert.Equal(t, status.SplineEv, st, "mass above the rebuilt spline range must fail")
	assert.NotZero(t, before)
}
