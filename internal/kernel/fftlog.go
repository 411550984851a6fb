package kernel

import (
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/halokit/internal/status"
)

// FFTLogTransform computes, for each of nCurves curves f sampled on the
// logarithmic grid rs, the dim-dimensional Hankel-type transform
//
//	F(k) = (2π)^(-dim/2) k^(-dim/2) ∫ f(r) r^(dim/2) J_mu(kr) k dr
//
// frs holds the curves back to back. q is the power-law bias. The result
// has outSize = (nCurves+1)*len(rs) values: the output k grid followed by
// each transformed curve. With dim=3 and mu=1/2 this is the Fourier
// transform under the 1/(2π)^3 convention.
func FFTLogTransform(c *Cosmology, rs, frs []float64, nCurves int, dim, mu, q float64, outSize int, st *int) []float64 {
	n := len(rs)
	switch {
	case n < 2:
		c.raise(st, status.Parameters, "FFTLogTransform: need at least 2 samples, got %d", n)
		return nil
	case nCurves < 1 || len(frs) != nCurves*n:
		c.raise(st, status.Parameters, "FFTLogTransform: %d values do not form %d curves of %d samples", len(frs), nCurves, n)
		return nil
	case outSize != (nCurves+1)*n:
		c.raise(st, status.Parameters, "FFTLogTransform: output size %d, want %d", outSize, (nCurves+1)*n)
		return nil
	}

	if rs[0] <= 0 {
		c.raise(st, status.Parameters, "FFTLogTransform: radii must be positive")
		return nil
	}
	dlnr := math.Log(rs[n-1]/rs[0]) / float64(n-1)
	for i := 1; i < n; i++ {
		step := math.Log(rs[i] / rs[i-1])
		if !(dlnr > 0) || math.Abs(step-dlnr) > 1e-6*dlnr {
			c.raise(st, status.Parameters, "FFTLogTransform: radii must be increasing and logarithmically spaced")
			return nil
		}
	}

	out := make([]float64, outSize)
	ks := out[:n]
	k0 := 1 / rs[n-1]
	for i := range ks {
		ks[i] = k0 * math.Exp(float64(i)*dlnr)
	}

	u := fftlogKernel(n, dlnr, math.Log(rs[0]*k0), mu, q)
	pref := math.Pow(2*math.Pi, -dim/2)

	var g errgroup.Group
	for j := 0; j < nCurves; j++ {
		g.Go(func() error {
			f := frs[j*n : (j+1)*n]
			dst := out[(j+1)*n : (j+2)*n]
			return fftlogCurve(dst, rs, ks, f, u, dim, q, pref)
		})
	}
	if err := g.Wait(); err != nil {
		c.raise(st, status.Integ, "FFTLogTransform: %v", err)
		return nil
	}
	return out
}

// fftlogKernel returns the Fourier-space multipliers
// (r0 k0)^(-iη) U_mu(q+iη) for every FFT frequency.
func fftlogKernel(n int, dlnr, lnr0k0, mu, q float64) []complex128 {
	u := make([]complex128, n)
	period := float64(n) * dlnr
	for m := range u {
		freq := m
		if m > n/2 {
			freq = m - n
		}
		eta := 2 * math.Pi * float64(freq) / period
		s := complex(q, eta)
		lnU := complex((q-1)*math.Ln2, eta*math.Ln2) +
			lgammaC((complex(mu, 0)+s)/2) - lgammaC((complex(mu, 0)-s)/2+1)
		u[m] = cmplx.Exp(lnU - complex(0, eta*lnr0k0))
	}
	return u
}

func fftlogCurve(dst, rs, ks, f []float64, u []complex128, dim, q, pref float64) error {
	n := len(rs)
	fft := fourier.NewCmplxFFT(n)

	seq := make([]complex128, n)
	for i, r := range rs {
		seq[i] = complex(f[i]*math.Pow(r, dim/2+1-q), 0)
	}
	coeff := fft.Coefficients(nil, seq)
	for m := range coeff {
		coeff[m] *= u[m] / complex(float64(n), 0)
	}
	// The Mellin sum over the output grid is again a forward transform.
	res := fft.Coefficients(nil, coeff)
	for i, k := range ks {
		v := real(res[i]) * math.Pow(k, 1-dim/2-q) * pref
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite output at k=%g", k)
		}
		dst[i] = v
	}
	return nil
}

var lanczos = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

// lgammaC is log Γ(z) for complex z off the non-positive real axis, up to a
// multiple of 2πi in the imaginary part.
func lgammaC(z complex128) complex128 {
	var shift complex128
	for real(z) < 0.5 {
		shift -= cmplx.Log(z)
		z += 1
	}
	z -= 1
	x := complex(lanczos[0], 0)
	for i := 1; i < len(lanczos); i++ {
		x += complex(lanczos[i], 0) / (z + complex(float64(i), 0))
	}
	t := z + 7.5
	return shift + complex(0.5*math.Log(2*math.Pi), 0) + (z+0.5)*cmplx.Log(t) - t + cmplx.Log(x)
}
