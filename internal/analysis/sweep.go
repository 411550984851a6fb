package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/halokit/internal/cosmo"
	"github.com/san-kum/halokit/internal/dispatch"
	"github.com/san-kum/halokit/internal/halos"
	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/transform"
)

type Quantity string

const (
	MassFunction Quantity = "hmf"
	HaloBias     Quantity = "bias"
	Sigma        Quantity = "sigma"
	Growth       Quantity = "growth"
	Power        Quantity = "power"
	Correlation  Quantity = "xi"
)

var quantityInfo = map[Quantity]string{
	MassFunction: "halo mass function",
	HaloBias:     "linear halo bias",
	Sigma:        "mass variance",
	Growth:       "linear growth factor",
	Power:        "linear power spectrum",
	Correlation:  "linear correlation function",
}

// Quantities lists every sweep in display order.
func Quantities() []Quantity {
	return []Quantity{MassFunction, HaloBias, Sigma, Growth, Power, Correlation}
}

func (q Quantity) Description() string { return quantityInfo[q] }

func ParseQuantity(name string) (Quantity, error) {
	q := Quantity(name)
	if _, ok := quantityInfo[q]; !ok {
		return "", fmt.Errorf("unknown quantity %q", name)
	}
	return q, nil
}

// Options control a sweep. MassFunc and Bias are only needed by the
// matching quantities.
type Options struct {
	A        float64
	LogMMin  float64
	LogMMax  float64
	N        int
	MassFunc halos.MassFunc
	Bias     halos.HaloBias
}

func DefaultOptions() Options {
	return Options{A: 1, LogMMin: 10, LogMMax: 15, N: 50}
}

// Curve is one sampled observable.
type Curve struct {
	Name   string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	LogX   bool
	LogY   bool
}

const (
	correlationRMin = 1.0
	correlationRMax = 200.0
	correlationN    = 1024
)

// Sweep evaluates q on its natural grid.
func Sweep(c *cosmo.Cosmology, q Quantity, opts Options) (*Curve, error) {
	if opts.N < 2 {
		return nil, fmt.Errorf("sweep %s: need at least 2 points, got %d", q, opts.N)
	}
	if !(opts.A > 0 && opts.A <= 1) {
		return nil, fmt.Errorf("sweep %s: scale factor %g outside (0, 1]", q, opts.A)
	}
	masses := kernel.Logspace(math.Pow(10, opts.LogMMin), math.Pow(10, opts.LogMMax), opts.N)
	m := dispatch.Sequence(masses)

	var (
		y   dispatch.Value
		err error
	)
	curve := &Curve{Name: string(q), X: masses, XLabel: "M [Msun]", LogX: true}
	switch q {
	case MassFunction:
		if opts.MassFunc == nil {
			return nil, fmt.Errorf("sweep %s: no mass function", q)
		}
		curve.Name = opts.MassFunc.Name()
		curve.YLabel, curve.LogY = "dn/dlog10M [Mpc^-3]", true
		y, err = halos.NumberDensity(opts.MassFunc, c, m, opts.A)
	case HaloBias:
		if opts.Bias == nil {
			return nil, fmt.Errorf("sweep %s: no halo bias", q)
		}
		curve.Name = opts.Bias.Name()
		curve.YLabel = "b(M)"
		y, err = halos.Bias(opts.Bias, c, m, opts.A)
	case Sigma:
		curve.YLabel, curve.LogY = "sigma(M)", true
		y, err = c.SigmaM(m, opts.A)
	case Growth:
		curve.X = kernel.Linspace(0.05, 1, opts.N)
		curve.XLabel, curve.LogX = "a", false
		curve.YLabel = "D(a)"
		y, err = c.GrowthFactor(dispatch.Sequence(curve.X))
	case Power:
		curve.X = kernel.Logspace(1e-4, 10, opts.N)
		curve.XLabel, curve.YLabel, curve.LogY = "k [1/Mpc]", "P(k) [Mpc^3]", true
		y, err = c.LinearPower(dispatch.Sequence(curve.X), dispatch.Scalar(opts.A))
	case Correlation:
		return correlation(c, opts)
	default:
		return nil, fmt.Errorf("unknown quantity %q", q)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", q, err)
	}
	curve.Y = y.Slice()
	return curve, nil
}

// correlation transforms P(k) on a wide logarithmic grid and keeps the
// radii between correlationRMin and correlationRMax.
func correlation(c *cosmo.Cosmology, opts Options) (*Curve, error) {
	ks := kernel.Logspace(1e-5, 1e3, correlationN)
	pk, err := c.LinearPower(dispatch.Sequence(ks), dispatch.Scalar(opts.A))
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", Correlation, err)
	}
	rs, xi, err := transform.FFTLog(ks, transform.Single(pk.Slice()), 3, 0.5, 0)
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", Correlation, err)
	}
	curve := &Curve{Name: string(Correlation), XLabel: "r [Mpc]", YLabel: "xi(r)", LogX: true}
	row := xi.Row(0)
	for i, r := range rs {
		if r >= correlationRMin && r <= correlationRMax {
			curve.X = append(curve.X, r)
			curve.Y = append(curve.Y, row[i])
		}
	}
	return curve, nil
}
