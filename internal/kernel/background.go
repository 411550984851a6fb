package kernel

import (
	"math"

	"github.com/san-kum/halokit/internal/status"
)

// Species labels accepted by OmegaX and RhoX.
const (
	SpeciesCritical = iota
	SpeciesMatter
	SpeciesLambda
	SpeciesCurvature
)

// RhoArgs selects the species and frame of RhoX.
type RhoArgs struct {
	Species  int
	Comoving bool
}

func (c *Cosmology) deExponent(a float64) float64 {
	w0, wa := c.Params.W0, c.Params.Wa
	return math.Pow(a, -3*(1+w0+wa)) * math.Exp(-3*wa*(1-a))
}

// e2 is (H/H0)^2 before validation of a.
func (c *Cosmology) e2(a float64) float64 {
	p := c.Params
	return p.OmegaM()/(a*a*a) + p.OmegaK/(a*a) + p.OmegaL()*c.deExponent(a)
}

func (c *Cosmology) hubble(a float64) float64 {
	return math.Sqrt(c.e2(a))
}

// HOverH0 returns the expansion rate H(a)/H0.
func HOverH0(c *Cosmology, a float64, st *int) float64 {
	if !checkScaleFactor(c, a, st, "HOverH0") {
		return math.NaN()
	}
	e2 := c.e2(a)
	if e2 <= 0 {
		c.raise(st, status.Parameters, "HOverH0: negative H^2 at a=%g", a)
		return math.NaN()
	}
	return math.Sqrt(e2)
}

// HOverH0Vec is the vector form of HOverH0.
func HOverH0Vec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "HOverH0Vec", as, n, st, func(a float64, st *int) float64 {
		return HOverH0(c, a, st)
	})
}

// hubbleDistance is c/H0 in Mpc.
func (c *Cosmology) hubbleDistance() float64 {
	return ClightHMpc / c.Params.H
}

// ComovingRadialDistance returns the line-of-sight comoving distance to
// scale factor a in Mpc.
func ComovingRadialDistance(c *Cosmology, a float64, st *int) float64 {
	if !checkScaleFactor(c, a, st, "ComovingRadialDistance") {
		return math.NaN()
	}
	if a == 1 {
		return 0
	}
	chi, ok := integrate(func(x float64) float64 {
		return 1 / (x * x * c.hubble(x))
	}, a, 1, c.GSL.IntegrationDistanceEpsrel, c.maxNodes())
	if !ok {
		c.raise(st, status.ComputeChi, "ComovingRadialDistance: integral did not converge at a=%g", a)
		return math.NaN()
	}
	return chi * c.hubbleDistance()
}

// ComovingRadialDistanceVec is the vector form of ComovingRadialDistance.
func ComovingRadialDistanceVec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "ComovingRadialDistanceVec", as, n, st, func(a float64, st *int) float64 {
		return ComovingRadialDistance(c, a, st)
	})
}

// transverse converts a radial comoving separation into a transverse one.
func (c *Cosmology) transverse(chi float64) float64 {
	ok := c.Params.OmegaK
	if ok == 0 {
		return chi
	}
	dh := c.hubbleDistance()
	sk := math.Sqrt(math.Abs(ok))
	if ok > 0 {
		return dh / sk * math.Sinh(sk*chi/dh)
	}
	return dh / sk * math.Sin(sk*chi/dh)
}

// AngularDiameterDistance returns the angular diameter distance in Mpc to
// an object at a2 seen from a1. a1 must not be smaller than a2.
func AngularDiameterDistance(c *Cosmology, a1, a2 float64, st *int) float64 {
	if a1 < a2 {
		c.raise(st, status.ComputeChi, "AngularDiameterDistance: observer a1=%g lies beyond source a2=%g", a1, a2)
		return math.NaN()
	}
	chi1 := ComovingRadialDistance(c, a1, st)
	if *st != status.OK {
		return math.NaN()
	}
	chi2 := ComovingRadialDistance(c, a2, st)
	if *st != status.OK {
		return math.NaN()
	}
	return a2 * c.transverse(chi2-chi1)
}

// AngularDiameterDistanceVec evaluates AngularDiameterDistance pairwise
// over a1s[:n] and a2s[:n].
func AngularDiameterDistanceVec(c *Cosmology, a1s, a2s []float64, n int, st *int) []float64 {
	if !checkLength(c, "AngularDiameterDistanceVec", a1s, n, st) ||
		!checkLength(c, "AngularDiameterDistanceVec", a2s, n, st) {
		return nil
	}
	return parallelEval(n, st, func(i int, st *int) float64 {
		return AngularDiameterDistance(c, a1s[i], a2s[i], st)
	})
}

// LuminosityDistance returns the luminosity distance to a in Mpc.
func LuminosityDistance(c *Cosmology, a float64, st *int) float64 {
	if !checkScaleFactor(c, a, st, "LuminosityDistance") {
		return math.NaN()
	}
	chi := ComovingRadialDistance(c, a, st)
	if *st != status.OK {
		return math.NaN()
	}
	return c.transverse(chi) / a
}

// LuminosityDistanceVec is the vector form of LuminosityDistance.
func LuminosityDistanceVec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "LuminosityDistanceVec", as, n, st, func(a float64, st *int) float64 {
		return LuminosityDistance(c, a, st)
	})
}

// OmegaX returns the density fraction of a species at scale factor a.
func OmegaX(c *Cosmology, a float64, species int, st *int) float64 {
	if !checkScaleFactor(c, a, st, "OmegaX") {
		return math.NaN()
	}
	p := c.Params
	e2 := c.e2(a)
	switch species {
	case SpeciesCritical:
		return 1
	case SpeciesMatter:
		return p.OmegaM() / (a * a * a) / e2
	case SpeciesLambda:
		return p.OmegaL() * c.deExponent(a) / e2
	case SpeciesCurvature:
		return p.OmegaK / (a * a) / e2
	}
	c.raise(st, status.Parameters, "OmegaX: unknown species label %d", species)
	return math.NaN()
}

// OmegaXVec is the vector form of OmegaX.
func OmegaXVec(c *Cosmology, species int, as []float64, n int, st *int) []float64 {
	return vectorize(c, "OmegaXVec", as, n, st, func(a float64, st *int) float64 {
		return OmegaX(c, a, species, st)
	})
}

// RhoX returns the physical (or comoving) density of a species at a in
// Msun/Mpc^3.
func RhoX(c *Cosmology, a float64, args RhoArgs, st *int) float64 {
	omega := OmegaX(c, a, args.Species, st)
	if *st != status.OK {
		return math.NaN()
	}
	rho := RhoCritical * c.Params.H * c.Params.H * c.e2(a) * omega
	if args.Comoving {
		rho *= a * a * a
	}
	return rho
}

// RhoXVec is the vector form of RhoX.
func RhoXVec(c *Cosmology, args RhoArgs, as []float64, n int, st *int) []float64 {
	return vectorize(c, "RhoXVec", as, n, st, func(a float64, st *int) float64 {
		return RhoX(c, a, args, st)
	})
}

// rhoMean is the comoving mean matter density in Msun/Mpc^3.
func (c *Cosmology) rhoMean() float64 {
	return RhoCritical * c.Params.H * c.Params.H * c.Params.OmegaM()
}
