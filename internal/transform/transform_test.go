package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/params"
	"github.com/san-kum/halokit/internal/status"
)

func TestResampleIdentity(t *testing.T) {
	x := []float64{0.1, 0.4, 1, 2.5, 7, 11}
	y := []float64{3, -1, 4, 1, -5, 9}
	out, err := Resample(x, y, x, ResampleOptions{})
	require.NoError(t, err)
	assert.Equal(t, y, out)
}

func TestResampleValidatesShapes(t *testing.T) {
	_, err := Resample([]float64{1, 2}, []float64{1}, []float64{1}, ResampleOptions{})
	assert.ErrorIs(t, err, status.ErrShape)

	_, err = Resample([]float64{1}, []float64{1}, []float64{1}, ResampleOptions{})
	assert.ErrorIs(t, err, status.ErrShape)
}

func TestResampleNoExtrapolationFails(t *testing.T) {
	x := []float64{1, 2, 3}
	_, err := Resample(x, x, []float64{0.5}, ResampleOptions{})
	assert.ErrorIs(t, err, status.ErrSplineEval)
	assert.Contains(t, err.Error(), "outside input range")
}

func TestResampleNaNOutputFails(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 4, 9, 16}
	_, err := Resample(x, y, []float64{math.NaN(), 2.5}, ResampleOptions{})
	assert.ErrorIs(t, err, status.ErrSplineEval)
}

func TestResamplePerSideRules(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 4, 9, 16}
	out, err := Resample(x, y, []float64{0, 8}, ResampleOptions{
		ExtrapLo: ExtrapConstant,
		FillLo:   -7,
		ExtrapHi: ExtrapLogxLogy,
	})
	require.NoError(t, err)
	assert.Equal(t, -7.0, out[0])
	// Secant slope in log-log between 3 and 4.
	slope := math.Log(16.0/9) / math.Log(4.0/3)
	assert.InDelta(t, 16*math.Pow(2, slope), out[1], 1e-9)
}

func TestParseExtrap(t *testing.T) {
	for i, name := range []string{"none", "constant", "linx_liny", "linx_logy", "logx_liny", "logx_logy"} {
		e, err := ParseExtrap(name)
		require.NoError(t, err)
		assert.Equal(t, Extrap(i), e)
		assert.Equal(t, name, e.String())
	}
	_, err := ParseExtrap("cubic")
	assert.ErrorIs(t, err, status.ErrType)
}

func gaussian(n int) ([]float64, []float64) {
	rs := floats.LogSpan(make([]float64, n), 1e-4, 1e3)
	fr := make([]float64, n)
	for i, r := range rs {
		fr[i] = math.Exp(-r * r / 2)
	}
	return rs, fr
}

func TestFFTLogSingleCurve(t *testing.T) {
	rs, fr := gaussian(512)
	ks, fks, err := FFTLog(rs, Single(fr), 3, 0.5, 0.5)
	require.NoError(t, err)
	require.False(t, fks.IsBatch())
	assert.Len(t, ks, len(rs))

	fk := fks.Row(0)
	for i, k := range ks {
		if k < 0.2 || k > 2 {
			continue
		}
		want := math.Exp(-k*k/2) / math.Pow(2*math.Pi, 1.5)
		assert.InEpsilon(t, want, fk[i], 1e-3, "k=%g", k)
	}
}

func TestFFTLogBatchShape(t *testing.T) {
	rs, fr := gaussian(128)
	batch, err := BatchOf([][]float64{fr, fr, fr})
	require.NoError(t, err)

	ks, fks, err := FFTLog(rs, batch, 3, 0.5, 0.5)
	require.NoError(t, err)
	require.True(t, fks.IsBatch())
	m, n := fks.Dims()
	assert.Equal(t, 3, m)
	assert.Equal(t, len(rs), n)
	assert.Len(t, ks, len(rs))
	assert.Equal(t, fks.Row(0), fks.Row(2))
}

func TestFFTLogValidatesShapes(t *testing.T) {
	rs, fr := gaussian(64)
	_, _, err := FFTLog(rs[:10], Single(fr), 3, 0.5, 0)
	assert.ErrorIs(t, err, status.ErrShape)

	_, err = BatchOf([][]float64{{1, 2}, {1}})
	assert.ErrorIs(t, err, status.ErrShape)
}

func TestSplineIntegrate(t *testing.T) {
	x := floats.Span(make([]float64, 201), 0, math.Pi)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = math.Sin(v)
	}

	v, err := SplineIntegrate(x, Single(y), dispatch.Scalar(x[0]), dispatch.Scalar(x[len(x)-1]))
	require.NoError(t, err)
	require.True(t, v.IsScalar())
	assert.InDelta(t, 2, v.Float(), 1e-6)

	m := mat.NewDense(2, len(x), nil)
	m.SetRow(0, y)
	for i := range y {
		m.Set(1, i, 3*y[i])
	}
	vs, err := SplineIntegrate(x, Batch(m), dispatch.Scalar(0), dispatch.Scalar(math.Pi))
	require.NoError(t, err)
	require.False(t, vs.IsScalar())
	assert.InDeltaSlice(t, []float64{2, 6}, vs.Slice(), 1e-5)
}

func TestSplineIntegrateRejectsVectorLimits(t *testing.T) {
	x := []float64{0, 1, 2}
	_, err := SplineIntegrate(x, Single(x), dispatch.Sequence([]float64{0, 1}), dispatch.Scalar(2))
	assert.ErrorIs(t, err, status.ErrType)

	_, err = SplineIntegrate(x, Single(x[:2]), dispatch.Scalar(0), dispatch.Scalar(1))
	assert.ErrorIs(t, err, status.ErrShape)
}

func TestSplineIntegrateNaNLimitFails(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	_, err := SplineIntegrate(x, Single(x), dispatch.Scalar(math.NaN()), dispatch.Scalar(2))
	assert.ErrorIs(t, err, status.ErrSplineEval)
}

func TestPkSplineGrids(t *testing.T) {
	cfg := params.NewConfig()

	a, err := PkSplineA(cfg)
	require.NoError(t, err)
	assert.Len(t, a, 10+40)
	assert.InDelta(t, 0.01, a[0], 1e-15)
	assert.Equal(t, 1.0, a[len(a)-1])

	lk, err := PkSplineLK(cfg)
	require.NoError(t, err)
	assert.Len(t, lk, int(math.Ceil(math.Log10(1e3/5e-5)*167)))
	assert.InDelta(t, math.Log(5e-5), lk[0], 1e-12)
	assert.InDelta(t, math.Log(1e3), lk[len(lk)-1], 1e-12)

	require.NoError(t, cfg.Spline.Set("N_K", 10))
	lk, err = PkSplineLK(cfg)
	require.NoError(t, err)
	assert.Len(t, lk, int(math.Ceil(math.Log10(1e3/5e-5)*10)))
}

func TestLogLinSpacingValidates(t *testing.T) {
	_, err := LogLinSpacing(1, 0.5, 2, 3, 3)
	assert.Error(t, err)

	xs, err := LogLinSpacing(0.01, 0.1, 1, 3, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.01, math.Sqrt(0.001), 0.1, 0.4, 0.7, 1}, xs, 1e-12)
}
