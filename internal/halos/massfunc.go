package halos

import (
	"math"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
)

// Press74 is the Press & Schechter (1974) mass function.
type Press74 struct {
	fit
	norm float64
}

// NewPress74 binds the Press & Schechter fit to md. It is calibrated for
// friends-of-friends masses only.
func NewPress74(md MassDef, strict bool) (*Press74, error) {
	return Bind(&Press74{}, md, strict)
}

func (*Press74) Name() string                 { return "Press74" }
func (*Press74) incompatible(md MassDef) bool { return notFoF(md) }
func (p *Press74) setup()                     { p.norm = math.Sqrt(2 / math.Pi) }

// FSigma returns sqrt(2/pi) nu exp(-nu^2/2).
func (p *Press74) FSigma(_ *cosmo.Cosmology, sigma dispatch.Value, _ float64, _ dispatch.Value) (dispatch.Value, error) {
	return sigma.Map(func(s float64) float64 {
		nu := peak(s)
		return p.norm * nu * math.Exp(-0.5*nu*nu)
	}), nil
}

// Sheth99 is the Sheth & Tormen (1999) mass function.
type Sheth99 struct {
	fit
	A, P, Alpha float64
}

// NewSheth99 binds the Sheth & Tormen fit to md. It is calibrated for
// friends-of-friends masses only.
func NewSheth99(md MassDef, strict bool) (*Sheth99, error) {
	return Bind(&Sheth99{}, md, strict)
}

func (*Sheth99) Name() string                 { return "Sheth99" }
func (*Sheth99) incompatible(md MassDef) bool { return notFoF(md) }

func (s *Sheth99) setup() {
	s.A = 0.21616
	s.P = 0.3
	s.Alpha = 0.707
}

// FSigma returns A nu (1 + (a nu^2)^-p) exp(-a nu^2/2).
func (s *Sheth99) FSigma(_ *cosmo.Cosmology, sigma dispatch.Value, _ float64, _ dispatch.Value) (dispatch.Value, error) {
	return sigma.Map(func(sig float64) float64 {
		nu := peak(sig)
		anu2 := s.Alpha * nu * nu
		return s.A * nu * (1 + math.Pow(anu2, -s.P)) * math.Exp(-0.5*anu2)
	}), nil
}
