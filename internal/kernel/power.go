package kernel

import (
	"math"

	"github.com/san-kum/halokit/internal/status"
)

// bbksTransfer is the Bardeen et al. (1986) transfer function with the
// Sugiyama (1995) shape parameter. k is in 1/Mpc.
func (c *Cosmology) bbksTransfer(k float64) float64 {
	p := c.Params
	om := p.OmegaM()
	gamma := om * p.H * math.Exp(-p.OmegaB*(1+math.Sqrt(2*p.H)/om))
	q := k / p.H / gamma
	if q < 1e-9 {
		return 1
	}
	x := 2.34 * q
	poly := 1 + 3.89*q + math.Pow(16.1*q, 2) + math.Pow(5.46*q, 3) + math.Pow(6.71*q, 4)
	return math.Log(1+x) / x * math.Pow(poly, -0.25)
}

// rawPower is the unnormalized linear power spectrum today.
func (c *Cosmology) rawPower(k float64) float64 {
	t := c.bbksTransfer(k)
	return math.Pow(k, c.Params.NS) * t * t
}

// amplitude returns the factor that normalizes rawPower to sigma8.
func (c *Cosmology) amplitude(st *int) float64 {
	c.mu.Lock()
	norm := c.norm
	c.mu.Unlock()
	if norm > 0 {
		return norm
	}

	s2, ok := c.rawSigma2(8 / c.Params.H)
	if !ok || s2 <= 0 {
		c.raise(st, status.Integ, "LinearPower: sigma8 normalization integral did not converge")
		return math.NaN()
	}
	norm = c.Params.Sigma8 * c.Params.Sigma8 / s2

	c.mu.Lock()
	c.norm = norm
	c.mu.Unlock()
	return norm
}

// LinearPower returns the linear matter power spectrum in Mpc^3 at
// wavenumber k (1/Mpc) and scale factor a.
func LinearPower(c *Cosmology, k, a float64, st *int) float64 {
	if !(k > 0) {
		c.raise(st, status.Parameters, "LinearPower: wavenumber %g must be positive", k)
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
	return norm * c.rawPower(k) * d * d
}

// LinearPowerGrid evaluates LinearPower on the outer product of ks and as.
// The result has len(ks)*len(as) values, row-major over (k, a). n must
// equal that product.
func LinearPowerGrid(c *Cosmology, ks, as []float64, n int, st *int) []float64 {
	nk, na := len(ks), len(as)
	if n != nk*na {
		c.raise(st, status.Parameters, "LinearPowerGrid: output count %d does not match %d x %d grid", n, nk, na)
		return nil
	}

	// Growth and normalization are shared across the grid.
	ds := GrowthFactorVec(c, as, na, st)
	if *st != status.OK {
		return nil
	}
	norm := c.amplitude(st)
	if *st != status.OK {
		return nil
	}

	return parallelEval(n, st, func(i int, st *int) float64 {
		k := ks[i/na]
		if !(k > 0) {
			c.raise(st, status.Parameters, "LinearPowerGrid: wavenumber %g must be positive", k)
			return math.NaN()
		}
		d := ds[i%na]
		return norm * c.rawPower(k) * d * d
	})
}
