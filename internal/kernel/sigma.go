package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/halokit/internal/status"
)

// DeltaC is the linear collapse threshold used by the fitting functions.
const DeltaC = 1.68647

// tophat is the Fourier transform of a spherical top-hat window.
func tophat(x float64) float64 {
	if x < 1e-3 {
		return 1 - x*x/10
	}
	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}

// rawSigma2 is the variance of the unnormalized field today, smoothed on
// radius r (Mpc).
func (c *Cosmology) rawSigma2(r float64) (float64, bool) {
	sp := c.Spline
	f := func(lnk float64) float64 {
		k := math.Exp(lnk)
		w := tophat(k * r)
		return k * k * k * c.rawPower(k) * w * w
	}
	v, ok := integrate(f, math.Log(sp.KMin), math.Log(sp.KMax), c.GSL.IntegrationSigmaREpsrel, c.maxNodes())
	return v / (2 * math.Pi * math.Pi), ok
}

// SigmaR returns the rms linear density contrast in spheres of radius r
// (Mpc) at scale factor a.
func SigmaR(c *Cosmology, r, a float64, st *int) float64 {
	if !(r > 0) {
		c.raise(st, status.Parameters, "SigmaR: radius %g must be positive", r)
		return math.NaN()
	}
	d := GrowthFactor(c, a, st)
	if *st != status.OK {
		return math.NaN()
	}
	norm := c.amplitude(st)
	if *st != status.OK {
		return math.NaN()
	}
	s2, ok := c.rawSigma2(r)
	if !ok {
		c.raise(st, status.Integ, "SigmaR: integral did not converge at R=%g", r)
		return math.NaN()
	}
	return math.Sqrt(norm*s2) * d
}

// SigmaRVec is the vector form of SigmaR over radii at a fixed a.
func SigmaRVec(c *Cosmology, a float64, rs []float64, n int, st *int) []float64 {
	return vectorize(c, "SigmaRVec", rs, n, st, func(r float64, st *int) float64 {
		return SigmaR(c, r, a, st)
	})
}

// MassToRadius returns the Lagrangian radius (Mpc) enclosing mass m (Msun)
// at the mean matter density.
func MassToRadius(c *Cosmology, m float64, st *int) float64 {
	if !(m > 0) {
		c.raise(st, status.Parameters, "MassToRadius: mass %g must be positive", m)
		return math.NaN()
	}
	return math.Cbrt(3 * m / (4 * math.Pi * c.rhoMean()))
}

// MassToRadiusVec is the vector form of MassToRadius.
func MassToRadiusVec(c *Cosmology, ms []float64, n int, st *int) []float64 {
	return vectorize(c, "MassToRadiusVec", ms, n, st, func(m float64, st *int) float64 {
		return MassToRadius(c, m, st)
	})
}

type sigmaTable struct {
	logMMin, logMMax float64
	lnSigma          interp.Predictor
}

func (c *Cosmology) buildSigma(st *int) (*sigmaTable, error) {
	sp := c.Spline
	nm := int(sp.LogMSplineNM)
	if nm < 2 || !(sp.LogMSplineMax > sp.LogMSplineMin) {
		return nil, fmt.Errorf("invalid mass grid [%g, %g] with %d points", sp.LogMSplineMin, sp.LogMSplineMax, nm)
	}
	norm := c.amplitude(st)
	if *st != status.OK {
		return nil, fmt.Errorf("normalization failed")
	}

	logMs := Linspace(sp.LogMSplineMin, sp.LogMSplineMax, nm)
	lnS := parallelEval(nm, st, func(i int, st *int) float64 {
		r := math.Cbrt(3 * math.Pow(10, logMs[i]) / (4 * math.Pi * c.rhoMean()))
		s2, ok := c.rawSigma2(r)
		if !ok {
			c.raise(st, status.Integ, "sigma(M): integral did not converge at log10M=%g", logMs[i])
			return math.NaN()
		}
		return 0.5 * math.Log(norm*s2)
	})
	if *st != status.OK {
		return nil, fmt.Errorf("sigma(M) grid failed")
	}

	spl, err := newSpline(sp.MSplineType, logMs, lnS)
	if err != nil {
		return nil, err
	}
	return &sigmaTable{logMMin: logMs[0], logMMax: logMs[nm-1], lnSigma: spl}, nil
}

func (c *Cosmology) sigmaSpline(st *int) *sigmaTable {
	c.mu.Lock()
	s := c.sigma
	c.mu.Unlock()
	if s != nil {
		return s
	}

	s, err := c.buildSigma(st)
	if err != nil {
		if *st == status.OK {
			c.raise(st, status.Spline, "sigma(M) spline: %v", err)
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sigma == nil {
		c.sigma = s
	}
	return c.sigma
}

// lnSigmaToday evaluates ln sigma(M) at a=1 from the mass spline.
func (c *Cosmology) lnSigmaToday(logM float64, fn string, st *int) float64 {
	s := c.sigmaSpline(st)
	if s == nil {
		return math.NaN()
	}
	if logM < s.logMMin || logM > s.logMMax {
		c.raise(st, status.SplineEv, "%s: log10(M)=%g outside spline range [%g, %g]", fn, logM, s.logMMin, s.logMMax)
		return math.NaN()
	}
	return s.lnSigma.Predict(logM)
}

// SigmaM returns sigma for halo mass m (Msun) at scale factor a.
func SigmaM(c *Cosmology, m, a float64, st *int) float64 {
	if !(m > 0) {
		c.raise(st, status.Parameters, "SigmaM: mass %g must be positive", m)
		return math.NaN()
	}
	d := GrowthFactor(c, a, st)
	if *st != status.OK {
		return math.NaN()
	}
	ln := c.lnSigmaToday(math.Log10(m), "SigmaM", st)
	if *st != status.OK {
		return math.NaN()
	}
	return math.Exp(ln) * d
}

// SigmaMVec is the vector form of SigmaM over masses at a fixed a.
func SigmaMVec(c *Cosmology, a float64, ms []float64, n int, st *int) []float64 {
	return vectorize(c, "SigmaMVec", ms, n, st, func(m float64, st *int) float64 {
		return SigmaM(c, m, a, st)
	})
}

// DlnSigmaInvDlogM returns dln(1/sigma)/dlog10(M), a finite difference of
// width LOGM_SPLINE_DELTA on the mass spline. It does not depend on a.
func DlnSigmaInvDlogM(c *Cosmology, m float64, st *int) float64 {
	if !(m > 0) {
		c.raise(st, status.Parameters, "DlnSigmaInvDlogM: mass %g must be positive", m)
		return math.NaN()
	}
	s := c.sigmaSpline(st)
	if s == nil {
		return math.NaN()
	}
	logM := math.Log10(m)
	half := c.Spline.LogMSplineDelta / 2
	lo := math.Max(logM-half, s.logMMin)
	hi := math.Min(logM+half, s.logMMax)
	if !(hi > lo) {
		c.raise(st, status.SplineEv, "DlnSigmaInvDlogM: log10(M)=%g outside spline range [%g, %g]", logM, s.logMMin, s.logMMax)
		return math.NaN()
	}
	sLo := c.lnSigmaToday(lo, "DlnSigmaInvDlogM", st)
	sHi := c.lnSigmaToday(hi, "DlnSigmaInvDlogM", st)
	if *st != status.OK {
		return math.NaN()
	}
	return -(sHi - sLo) / (hi - lo)
}

// DlnSigmaInvDlogMVec is the vector form of DlnSigmaInvDlogM.
func DlnSigmaInvDlogMVec(c *Cosmology, ms []float64, n int, st *int) []float64 {
	return vectorize(c, "DlnSigmaInvDlogMVec", ms, n, st, func(m float64, st *int) float64 {
		return DlnSigmaInvDlogM(c, m, st)
	})
}

// NonlinearMass returns the mass (Msun) at which sigma(M, a) equals DeltaC.
func NonlinearMass(c *Cosmology, a float64, st *int) float64 {
	d := GrowthFactor(c, a, st)
	if *st != status.OK {
		return math.NaN()
	}
	s := c.sigmaSpline(st)
	if s == nil {
		return math.NaN()
	}

	target := math.Log(DeltaC / d)
	g := func(logM float64) float64 { return s.lnSigma.Predict(logM) - target }
	root, err := bisect(g, s.logMMin, s.logMMax, c.GSL.RootEpsrel, int(c.GSL.RootNIteration))
	if err != nil {
		c.raise(st, status.Root, "NonlinearMass: %v at a=%g", err, a)
		return math.NaN()
	}
	return math.Pow(10, root)
}

// NonlinearMassVec is the vector form of NonlinearMass.
func NonlinearMassVec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "NonlinearMassVec", as, n, st, func(a float64, st *int) float64 {
		return NonlinearMass(c, a, st)
	})
}

// bisect finds a root of g in [lo, hi] to relative precision epsrel.
func bisect(g func(float64) float64, lo, hi, epsrel float64, maxIter int) (float64, error) {
	glo, ghi := g(lo), g(hi)
	if glo == 0 {
		return lo, nil
	}
	if ghi == 0 {
		return hi, nil
	}
	if math.Signbit(glo) == math.Signbit(ghi) {
		return math.NaN(), fmt.Errorf("root not bracketed in [%g, %g]", lo, hi)
	}
	for i := 0; i < maxIter; i++ {
		mid := 0.5 * (lo + hi)
		gm := g(mid)
		if gm == 0 || math.Abs(hi-lo) <= epsrel*math.Abs(mid) {
			return mid, nil
		}
		if math.Signbit(gm) == math.Signbit(glo) {
			lo, glo = mid, gm
		} else {
			hi = mid
		}
	}
	return math.NaN(), fmt.Errorf("no convergence after %d iterations", maxIter)
}
