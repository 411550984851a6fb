// Package halos evaluates halo mass functions and halo bias as functions
// of the peak height nu = DeltaC/sigma.
//
// Every model is bound to one [MassDef] when it is constructed. A strict
// binding rejects mass definitions the fit was not calibrated for with
// status.ErrInconsistent; a non-strict binding skips the check and leaves
// extrapolation to the caller.
package halos

import (
	"math"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/status"
)

// DeltaC is the spherical collapse threshold used by every fit.
const DeltaC = kernel.DeltaC

// Model is the part shared by mass functions and bias fits. The
// unexported methods close the family to this package.
type Model interface {
	Name() string
	MassDef() MassDef
	Strict() bool

	incompatible(md MassDef) bool
	bind(md MassDef, strict bool)
	setup()
}

// MassFunc is a halo multiplicity function f(sigma).
type MassFunc interface {
	Model
	// FSigma evaluates f at each sigma. lnM is the natural log of the
	// halo mass in Msun, shaped like sigma; fits that ignore mass accept
	// any value.
	FSigma(c *cosmo.Cosmology, sigma dispatch.Value, a float64, lnM dispatch.Value) (dispatch.Value, error)
}

// HaloBias is a linear halo bias fit b(sigma).
type HaloBias interface {
	Model
	BSigma(c *cosmo.Cosmology, sigma dispatch.Value, a float64) (dispatch.Value, error)
}

// Bind attaches md to m. With strict set, an incompatible mass definition
// fails before setup runs.
func Bind[M Model](m M, md MassDef, strict bool) (M, error) {
	if strict && m.incompatible(md) {
		var zero M
		return zero, status.Inconsistentf("%s is not defined for mass definition %s", m.Name(), md.Name())
	}
	m.bind(md, strict)
	m.setup()
	return m, nil
}

type fit struct {
	md     MassDef
	strict bool
}

func (f *fit) MassDef() MassDef { return f.md }
func (f *fit) Strict() bool     { return f.strict }

func (f *fit) bind(md MassDef, strict bool) {
	f.md = md
	f.strict = strict
}

func notFoF(md MassDef) bool { return !md.IsFoF() }

func peak(sigma float64) float64 { return DeltaC / sigma }

// NumberDensity returns dn/dlog10(M) in 1/Mpc^3 for masses m (Msun) at
// scale factor a.
func NumberDensity(mf MassFunc, c *cosmo.Cosmology, m dispatch.Value, a float64) (dispatch.Value, error) {
	sigma, err := c.SigmaM(m, a)
	if err != nil {
		return dispatch.Value{}, err
	}
	dlns, err := c.DlnSigmaInvDlogM(m)
	if err != nil {
		return dispatch.Value{}, err
	}
	f, err := mf.FSigma(c, sigma, a, m.Map(math.Log))
	if err != nil {
		return dispatch.Value{}, err
	}
	rho, err := c.RhoMean()
	if err != nil {
		return dispatch.Value{}, err
	}
	perMass, err := dispatch.Zip(f, m, func(f, m float64) float64 { return f * rho / m })
	if err != nil {
		return dispatch.Value{}, err
	}
	return dispatch.Zip(perMass, dlns, func(x, d float64) float64 { return x * d })
}

// Bias returns the halo bias for masses m (Msun) at scale factor a.
func Bias(hb HaloBias, c *cosmo.Cosmology, m dispatch.Value, a float64) (dispatch.Value, error) {
	sigma, err := c.SigmaM(m, a)
	if err != nil {
		return dispatch.Value{}, err
	}
	return hb.BSigma(c, sigma, a)
}
