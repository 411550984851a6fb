package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/halokit/internal/integrators"
	"github.com/san-kum/halokit/internal/status"
)

type growthTable struct {
	aMin   float64
	factor interp.Predictor
	rate   interp.Predictor
}

// growthSystem is the linear growth equation in t = ln a with state
// (D, a^3 E dD/da).
func (c *Cosmology) growthSystem() integrators.System {
	om := c.Params.OmegaM()
	return integrators.SystemFunc(func(y []float64, t float64) []float64 {
		a := math.Exp(t)
		e := c.hubble(a)
		return []float64{
			y[1] / (a * a * e),
			1.5 * om * y[0] / (a * e),
		}
	})
}

func (c *Cosmology) buildGrowth() (*growthTable, error) {
	sp := c.Spline
	as := LogLinSpacing(sp.ASplineMinLog, sp.ASplineMin, sp.ASplineMax, int(sp.ASplineNLog), int(sp.ASplineNA))
	if len(as) < 2 {
		return nil, fmt.Errorf("scale factor grid has %d points", len(as))
	}

	ai := c.GSL.EpsScalefacGrowth
	if ai <= 0 || ai >= as[0] {
		return nil, fmt.Errorf("EPS_SCALEFAC_GROWTH=%g must lie in (0, %g)", ai, as[0])
	}
	ts := make([]float64, len(as))
	for i, a := range as {
		ts[i] = math.Log(a)
	}

	y0 := []float64{ai, ai * ai * ai * c.hubble(ai)}
	states, err := c.solveGrowth(y0, math.Log(ai), ts)
	if err != nil {
		return nil, err
	}

	d1 := states[len(states)-1][0]
	ds := make([]float64, len(as))
	fs := make([]float64, len(as))
	for i, y := range states {
		a := as[i]
		ds[i] = y[0] / d1
		fs[i] = y[1] / (a * a * c.hubble(a) * y[0])
	}

	factor, err := newSpline(sp.DSplineType, as, ds)
	if err != nil {
		return nil, err
	}
	rate, err := newSpline(sp.DSplineType, as, fs)
	if err != nil {
		return nil, err
	}
	return &growthTable{aMin: as[0], factor: factor, rate: rate}, nil
}

// solveGrowth runs the adaptive RK45 solver, or fixed-step RK4 with
// N_ITERATION steps over the whole range when ODE_GROWTH_EPSREL is zero.
func (c *Cosmology) solveGrowth(y0 []float64, t0 float64, ts []float64) ([][]float64, error) {
	cfg := integrators.DefaultSolveConfig()
	cfg.MaxSteps = int(c.GSL.NIteration) * 100

	eps := c.GSL.ODEGrowthEpsrel
	switch {
	case eps > 0:
		cfg.Tolerance = eps
		return integrators.Solve(integrators.NewRK45(), c.growthSystem(), y0, t0, ts, cfg)
	case eps == 0:
		if c.GSL.NIteration < 1 {
			return nil, fmt.Errorf("N_ITERATION=%g leaves no fixed steps", c.GSL.NIteration)
		}
		cfg.InitialDt = (ts[len(ts)-1] - t0) / c.GSL.NIteration
		return integrators.SolveFixed(integrators.NewRK4(), c.growthSystem(), y0, t0, ts, cfg)
	default:
		return nil, fmt.Errorf("ODE_GROWTH_EPSREL=%g is negative", eps)
	}
}

func (c *Cosmology) growthSpline(st *int) *growthTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.growth != nil {
		return c.growth
	}
	g, err := c.buildGrowth()
	if err != nil {
		c.raise(st, status.Integ, "growth: %v", err)
		return nil
	}
	c.growth = g
	return g
}

// GrowthFactor returns the linear growth factor normalized to 1 today.
// Below the spline range the growing mode is taken as proportional to a.
func GrowthFactor(c *Cosmology, a float64, st *int) float64 {
	if !checkScaleFactor(c, a, st, "GrowthFactor") {
		return math.NaN()
	}
	g := c.growthSpline(st)
	if g == nil {
		return math.NaN()
	}
	if a < g.aMin {
		return g.factor.Predict(g.aMin) * a / g.aMin
	}
	return g.factor.Predict(a)
}

// GrowthFactorVec is the vector form of GrowthFactor.
func GrowthFactorVec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "GrowthFactorVec", as, n, st, func(a float64, st *int) float64 {
		return GrowthFactor(c, a, st)
	})
}

// GrowthRate returns the logarithmic growth rate dlnD/dlna.
func GrowthRate(c *Cosmology, a float64, st *int) float64 {
	if !checkScaleFactor(c, a, st, "GrowthRate") {
		return math.NaN()
	}
	g := c.growthSpline(st)
	if g == nil {
		return math.NaN()
	}
	if a < g.aMin {
		return g.rate.Predict(g.aMin)
	}
	return g.rate.Predict(a)
}

// GrowthRateVec is the vector form of GrowthRate.
func GrowthRateVec(c *Cosmology, as []float64, n int, st *int) []float64 {
	return vectorize(c, "GrowthRateVec", as, n, st, func(a float64, st *int) float64 {
		return GrowthRate(c, a, st)
	})
}
