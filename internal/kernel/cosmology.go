package kernel

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/halokit/internal/status"
)

const (
	// RhoCritical is the critical density today in units of h^2 Msun/Mpc^3.
	RhoCritical = 2.77536627e11

	// ClightHMpc is c/H0 in units of Mpc/h.
	ClightHMpc = 2997.92458
)

// Params is the numeric parameter bundle of a cosmology.
type Params struct {
	OmegaC float64 `yaml:"omega_c" json:"omega_c"`
	OmegaB float64 `yaml:"omega_b" json:"omega_b"`
	OmegaK float64 `yaml:"omega_k" json:"omega_k"`
	H      float64 `yaml:"h" json:"h"`
	NS     float64 `yaml:"n_s" json:"n_s"`
	Sigma8 float64 `yaml:"sigma8" json:"sigma8"`
	W0     float64 `yaml:"w0" json:"w0"`
	Wa     float64 `yaml:"wa" json:"wa"`
	TCMB   float64 `yaml:"t_cmb" json:"t_cmb"`
}

// DefaultParams returns a flat LCDM cosmology close to Planck 2018.
func DefaultParams() Params {
	return Params{
		OmegaC: 0.25,
		OmegaB: 0.05,
		H:      0.67,
		NS:     0.96,
		Sigma8: 0.81,
		W0:     -1,
		TCMB:   2.7255,
	}
}

// OmegaM is the total matter density parameter today.
func (p Params) OmegaM() float64 { return p.OmegaC + p.OmegaB }

// OmegaL is the dark energy density parameter today.
func (p Params) OmegaL() float64 { return 1 - p.OmegaM() - p.OmegaK }

// Validate reports the first unphysical parameter.
func (p Params) Validate() error {
	switch {
	case p.OmegaC < 0 || p.OmegaB < 0:
		return fmt.Errorf("density parameters must be non-negative (Omega_c=%g, Omega_b=%g)", p.OmegaC, p.OmegaB)
	case p.OmegaM() <= 0:
		return fmt.Errorf("Omega_m must be positive, got %g", p.OmegaM())
	case p.H <= 0:
		return fmt.Errorf("h must be positive, got %g", p.H)
	case p.Sigma8 <= 0:
		return fmt.Errorf("sigma8 must be positive, got %g", p.Sigma8)
	case math.IsNaN(p.NS) || math.IsNaN(p.W0) || math.IsNaN(p.Wa):
		return fmt.Errorf("n_s, w0 and wa must be numbers")
	}
	return nil
}

// Cosmology is the kernel handle. The caller owns it; the kernel writes the
// last error message into it and caches splines built from its parameters.
type Cosmology struct {
	Params Params
	GSL    GSLParams
	Spline SplineParams

	msgMu   sync.Mutex
	message string

	mu     sync.Mutex
	growth *growthTable
	sigma  *sigmaTable
	norm   float64
}

// New builds a handle with the compiled-in GSL and spline defaults.
func New(p Params) (*Cosmology, error) {
	c := &Cosmology{
		Params: p,
		GSL:    DefaultGSLParams(),
		Spline: DefaultSplineParams(),
	}
	if err := p.Validate(); err != nil {
		st := status.OK
		c.raise(&st, status.Parameters, "kernel.New(): %v", err)
		return nil, status.Check(st, c)
	}
	return c, nil
}

// StatusMessage returns the message written by the most recent failing
// call. It is safe on a nil handle.
func (c *Cosmology) StatusMessage() string {
	if c == nil {
		return ""
	}
	c.msgMu.Lock()
	defer c.msgMu.Unlock()
	return c.message
}

func (c *Cosmology) setMessage(msg string) {
	if c == nil {
		return
	}
	c.msgMu.Lock()
	c.message = msg
	c.msgMu.Unlock()
}

// Invalidate drops every cached spline so the next query rebuilds them from
// the current parameters.
func (c *Cosmology) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.growth = nil
	c.sigma = nil
	c.norm = 0
}

// raise records a failure: it sets the status, stores the message on the
// handle (when there is one) and logs it in debug mode.
func (c *Cosmology) raise(st *int, code status.Code, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	*st = code
	c.setMessage(msg)
	logRaised(code, msg)
}

func checkScaleFactor(c *Cosmology, a float64, st *int, fn string) bool {
	if !(a > 0 && a <= 1) {
		c.raise(st, status.Parameters, "%s: scale factor %g outside (0, 1]", fn, a)
		return false
	}
	return true
}
