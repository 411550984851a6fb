package halos

import (
	"math"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
)

// Sheth01 is the Sheth, Mo & Tormen (2001) halo bias.
type Sheth01 struct {
	fit
	a, b, c float64
	sqrta   float64
	t1      float64
}

// NewSheth01 binds the Sheth, Mo & Tormen bias to md. It is calibrated
// for friends-of-friends masses only.
func NewSheth01(md MassDef, strict bool) (*Sheth01, error) {
	return Bind(&Sheth01{}, md, strict)
}

func (*Sheth01) Name() string                 { return "Sheth01" }
func (*Sheth01) incompatible(md MassDef) bool { return notFoF(md) }

func (s *Sheth01) setup() {
	s.a, s.b, s.c = 0.707, 0.5, 0.6
	s.sqrta = math.Sqrt(s.a)
	s.t1 = s.b * (1 - s.c) * (1 - 0.5*s.c)
}

// BSigma evaluates the ellipsoidal-collapse bias at each sigma.
func (s *Sheth01) BSigma(_ *cosmo.Cosmology, sigma dispatch.Value, _ float64) (dispatch.Value, error) {
	return sigma.Map(func(sig float64) float64 {
		nu := peak(sig)
		x := s.a * nu * nu
		xc := math.Pow(x, s.c)
		return 1 + (s.sqrta*x*(1+s.b/xc)-xc/(xc+s.t1))/(s.sqrta*DeltaC)
	}), nil
}

// Sheth99Bias is the peak-background split bias of the Sheth & Tormen
// (1999) mass function.
type Sheth99Bias struct {
	fit
	p, a float64
}

// NewSheth99Bias binds the Sheth & Tormen bias to md. It is calibrated
// for friends-of-friends masses only.
func NewSheth99Bias(md MassDef, strict bool) (*Sheth99Bias, error) {
	return Bind(&Sheth99Bias{}, md, strict)
}

func (*Sheth99Bias) Name() string                 { return "Sheth99" }
func (*Sheth99Bias) incompatible(md MassDef) bool { return notFoF(md) }
func (s *Sheth99Bias) setup()                     { s.p, s.a = 0.3, 0.707 }

// BSigma returns 1 + (a nu^2 - 1 + 2p/(1 + (a nu^2)^p))/DeltaC.
func (s *Sheth99Bias) BSigma(_ *cosmo.Cosmology, sigma dispatch.Value, _ float64) (dispatch.Value, error) {
	return sigma.Map(func(sig float64) float64 {
		nu := peak(sig)
		anu2 := s.a * nu * nu
		return 1 + (anu2-1+2*s.p/(1+math.Pow(anu2, s.p)))/DeltaC
	}), nil
}

// Tinker10 is the Tinker et al. (2010) halo bias for spherical
// overdensity masses.
type Tinker10 struct {
	fit
	bigB, b, c float64
}

// NewTinker10 binds the Tinker et al. bias to md. Friends-of-friends
// masses are not supported.
func NewTinker10(md MassDef, strict bool) (*Tinker10, error) {
	return Bind(&Tinker10{}, md, strict)
}

func (*Tinker10) Name() string                 { return "Tinker10" }
func (*Tinker10) incompatible(md MassDef) bool { return md.IsFoF() }
func (t *Tinker10) setup()                     { t.bigB, t.b, t.c = 0.183, 1.5, 2.4 }

// BSigma evaluates the fit with coefficients interpolated in
// y = log10(Delta_m) at scale factor a.
func (t *Tinker10) BSigma(c *cosmo.Cosmology, sigma dispatch.Value, a float64) (dispatch.Value, error) {
	dm, err := t.md.DeltaMatter(c, a)
	if err != nil {
		return dispatch.Value{}, err
	}
	y := math.Log10(dm)
	xp := math.Exp(-math.Pow(4/y, 4))
	bigA := 1 + 0.24*y*xp
	bigC := 0.019 + 0.107*y + 0.19*xp
	aa := 0.44*y - 0.88
	dca := math.Pow(DeltaC, aa)

	return sigma.Map(func(sig float64) float64 {
		nu := peak(sig)
		nupa := math.Pow(nu, aa)
		return 1 - bigA*nupa/(nupa+dca) + t.bigB*math.Pow(nu, t.b) + bigC*math.Pow(nu, t.c)
	}), nil
}
