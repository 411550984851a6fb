// Package cosmo is the user-facing cosmology: every query accepts a scalar
// or a sequence through package dispatch and returns the same shape.
package cosmo

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/params"
)

type handle = *kernel.Cosmology

var (
	hOverH0      = dispatch.Unary(kernel.HOverH0, kernel.HOverH0Vec)
	comoving     = dispatch.Unary(kernel.ComovingRadialDistance, kernel.ComovingRadialDistanceVec)
	luminosity   = dispatch.Unary(kernel.LuminosityDistance, kernel.LuminosityDistanceVec)
	growthFactor = dispatch.Unary(kernel.GrowthFactor, kernel.GrowthFactorVec)
	growthRate   = dispatch.Unary(kernel.GrowthRate, kernel.GrowthRateVec)
	massToRadius = dispatch.Unary(kernel.MassToRadius, kernel.MassToRadiusVec)
	dlnSigma     = dispatch.Unary(kernel.DlnSigmaInvDlogM, kernel.DlnSigmaInvDlogMVec)
	nonlinear    = dispatch.Unary(kernel.NonlinearMass, kernel.NonlinearMassVec)

	omegaX = dispatch.Entry[handle, int]{Scalar: kernel.OmegaX, Vector: kernel.OmegaXVec}
	rhoX   = dispatch.Entry[handle, kernel.RhoArgs]{Scalar: kernel.RhoX, Vector: kernel.RhoXVec}
	sigmaR = dispatch.Entry[handle, float64]{Scalar: kernel.SigmaR, Vector: kernel.SigmaRVec}
	sigmaM = dispatch.Entry[handle, float64]{Scalar: kernel.SigmaM, Vector: kernel.SigmaMVec}

	angularDiameter = dispatch.PairedEntry[handle]{
		Scalar: kernel.AngularDiameterDistance,
		Vector: kernel.AngularDiameterDistanceVec,
	}
	linearPower = dispatch.OuterEntry[handle]{
		Scalar: kernel.LinearPower,
		Vector: kernel.LinearPowerGrid,
	}
)

// Species names a density component.
type Species int

const (
	Critical  = Species(kernel.SpeciesCritical)
	Matter    = Species(kernel.SpeciesMatter)
	Lambda    = Species(kernel.SpeciesLambda)
	Curvature = Species(kernel.SpeciesCurvature)
)

var speciesNames = map[string]Species{
	"critical":  Critical,
	"matter":    Matter,
	"lambda":    Lambda,
	"curvature": Curvature,
}

// ParseSpecies maps a name such as "matter" to its Species.
func ParseSpecies(name string) (Species, error) {
	s, ok := speciesNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown species %q", name)
	}
	return s, nil
}

// Cosmology pairs a kernel handle with the parameter sets pushed into it.
type Cosmology struct {
	h   *kernel.Cosmology
	cfg *params.Config
}

// New builds a cosmology and populates it from cfg. A nil cfg uses the
// kernel defaults.
func New(p kernel.Params, cfg *params.Config) (*Cosmology, error) {
	h, err := kernel.New(p)
	if err != nil {
		return nil, fmt.Errorf("cosmology: %w", err)
	}
	if cfg == nil {
		cfg = params.NewConfig()
	}
	if err := cfg.Populate(h); err != nil {
		return nil, fmt.Errorf("cosmology: %w", err)
	}
	return &Cosmology{h: h, cfg: cfg}, nil
}

// Handle exposes the kernel handle.
func (c *Cosmology) Handle() *kernel.Cosmology { return c.h }

// Params returns the cosmological parameters.
func (c *Cosmology) Params() kernel.Params { return c.h.Params }

// Config returns the parameter sets. After changing them call Repopulate.
func (c *Cosmology) Config() *params.Config { return c.cfg }

// Repopulate pushes the current parameter sets into the handle.
func (c *Cosmology) Repopulate() error {
	return c.cfg.Populate(c.h)
}

// HOverH0 returns H(a)/H0.
func (c *Cosmology) HOverH0(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(hOverH0, c.h, a, dispatch.None{})
}

// ComovingRadialDistance returns the comoving distance to a in Mpc.
func (c *Cosmology) ComovingRadialDistance(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(comoving, c.h, a, dispatch.None{})
}

// LuminosityDistance returns the luminosity distance to a in Mpc.
func (c *Cosmology) LuminosityDistance(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(luminosity, c.h, a, dispatch.None{})
}

// AngularDiameterDistance returns the angular diameter distance between
// each pair (a1, a2), a1 >= a2, in Mpc.
func (c *Cosmology) AngularDiameterDistance(a1, a2 dispatch.Value) (dispatch.Value, error) {
	return dispatch.Paired(angularDiameter, c.h, a1, a2)
}

// OmegaX returns the density fraction of s at a.
func (c *Cosmology) OmegaX(a dispatch.Value, s Species) (dispatch.Value, error) {
	return dispatch.Call(omegaX, c.h, a, int(s))
}

// RhoX returns the density of s at a in Msun/Mpc^3.
func (c *Cosmology) RhoX(a dispatch.Value, s Species, comoving bool) (dispatch.Value, error) {
	return dispatch.Call(rhoX, c.h, a, kernel.RhoArgs{Species: int(s), Comoving: comoving})
}

// GrowthFactor returns the linear growth factor, 1 today.
func (c *Cosmology) GrowthFactor(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(growthFactor, c.h, a, dispatch.None{})
}

// GrowthRate returns dlnD/dlna.
func (c *Cosmology) GrowthRate(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(growthRate, c.h, a, dispatch.None{})
}

// LinearPower returns P(k, a) in Mpc^3 over every combination of k (1/Mpc)
// and a, row-major over (k, a).
func (c *Cosmology) LinearPower(k, a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Outer(linearPower, c.h, k, a)
}

// LinearPowerGrid returns P(k, a) as a len(ks) x len(as) matrix.
func (c *Cosmology) LinearPowerGrid(ks, as []float64) (*mat.Dense, error) {
	if len(ks) == 0 || len(as) == 0 {
		return nil, fmt.Errorf("linear power grid: empty axis")
	}
	v, err := c.LinearPower(dispatch.Sequence(ks), dispatch.Sequence(as))
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(ks), len(as), v.Slice()), nil
}

// SigmaR returns the rms density contrast in spheres of radius r (Mpc).
func (c *Cosmology) SigmaR(r dispatch.Value, a float64) (dispatch.Value, error) {
	return dispatch.Call(sigmaR, c.h, r, a)
}

// SigmaM returns sigma for halo mass m (Msun).
func (c *Cosmology) SigmaM(m dispatch.Value, a float64) (dispatch.Value, error) {
	return dispatch.Call(sigmaM, c.h, m, a)
}

// DlnSigmaInvDlogM returns dln(1/sigma)/dlog10(M).
func (c *Cosmology) DlnSigmaInvDlogM(m dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(dlnSigma, c.h, m, dispatch.None{})
}

// MassToRadius returns the Lagrangian radius of m in Mpc.
func (c *Cosmology) MassToRadius(m dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(massToRadius, c.h, m, dispatch.None{})
}

// NonlinearMass returns the mass where sigma equals the collapse threshold.
func (c *Cosmology) NonlinearMass(a dispatch.Value) (dispatch.Value, error) {
	return dispatch.Call(nonlinear, c.h, a, dispatch.None{})
}

// RhoMean returns the comoving mean matter density in Msun/Mpc^3.
func (c *Cosmology) RhoMean() (float64, error) {
	v, err := c.RhoX(dispatch.Scalar(1), Matter, true)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}
