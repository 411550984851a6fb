package halos

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/status"
)

// ErrMassDef is returned for a malformed mass definition.
var ErrMassDef = errors.New("halos: invalid mass definition")

// RhoType is the reference density of a spherical overdensity.
type RhoType int

const (
	RhoMatter RhoType = iota
	RhoCritical
)

func (r RhoType) String() string {
	if r == RhoCritical {
		return "critical"
	}
	return "matter"
}

const (
	labelFoF = "fof"
	labelVir = "vir"
)

// MassDef is a halo boundary convention: friends-of-friends, virial, or a
// fixed multiple of the matter or critical density.
type MassDef struct {
	label string
	delta float64
	rho   RhoType
}

// FoF is the friends-of-friends definition.
func FoF() MassDef { return MassDef{label: labelFoF} }

// Virial uses the Bryan & Norman overdensity relative to the critical
// density.
func Virial() MassDef { return MassDef{label: labelVir, rho: RhoCritical} }

// NewMassDef returns a spherical overdensity of delta times the reference
// density.
func NewMassDef(delta float64, rho RhoType) (MassDef, error) {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return MassDef{}, fmt.Errorf("%w: overdensity %g", ErrMassDef, delta)
	}
	if rho != RhoMatter && rho != RhoCritical {
		return MassDef{}, fmt.Errorf("%w: reference density %d", ErrMassDef, rho)
	}
	return MassDef{delta: delta, rho: rho}, nil
}

// ParseMassDef reads names such as "200m", "500c", "fof" and "vir".
func ParseMassDef(name string) (MassDef, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case labelFoF:
		return FoF(), nil
	case labelVir:
		return Virial(), nil
	case "":
		return MassDef{}, fmt.Errorf("%w: empty name", ErrMassDef)
	}

	var rho RhoType
	switch s[len(s)-1] {
	case 'm':
		rho = RhoMatter
	case 'c':
		rho = RhoCritical
	default:
		return MassDef{}, fmt.Errorf("%w: %q has no m or c suffix", ErrMassDef, name)
	}
	delta, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return MassDef{}, fmt.Errorf("%w: %q", ErrMassDef, name)
	}
	return NewMassDef(delta, rho)
}

// IsFoF reports whether m is the friends-of-friends definition.
func (m MassDef) IsFoF() bool { return m.label == labelFoF }

// IsVirial reports whether m is the virial definition.
func (m MassDef) IsVirial() bool { return m.label == labelVir }

// Delta returns the numeric overdensity, or 0 for fof and vir.
func (m MassDef) Delta() float64 { return m.delta }

// Rho returns the reference density.
func (m MassDef) Rho() RhoType { return m.rho }

// Name is the canonical label, the inverse of ParseMassDef.
func (m MassDef) Name() string {
	if m.label != "" {
		return m.label
	}
	suffix := "m"
	if m.rho == RhoCritical {
		suffix = "c"
	}
	return strconv.FormatFloat(m.delta, 'g', -1, 64) + suffix
}

func (m MassDef) String() string { return m.Name() }

// DeltaMatter converts the overdensity at scale factor a into a multiple
// of the mean matter density. Friends-of-friends has no overdensity.
func (m MassDef) DeltaMatter(c *cosmo.Cosmology, a float64) (float64, error) {
	if m.IsFoF() {
		return 0, status.Inconsistentf("mass definition fof has no spherical overdensity")
	}
	if !m.IsVirial() && m.rho == RhoMatter {
		return m.delta, nil
	}
	if c == nil {
		return 0, status.Inconsistentf("mass definition %s needs a cosmology", m.Name())
	}
	om, err := c.OmegaX(dispatch.Scalar(a), cosmo.Matter)
	if err != nil {
		return 0, err
	}
	omega := om.Float()
	if m.IsVirial() {
		x := omega - 1
		return (18*math.Pi*math.Pi + 82*x - 39*x*x) / omega, nil
	}
	return m.delta / omega, nil
}
