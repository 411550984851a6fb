package kernel

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const quadStartNodes = 64

// integrate estimates the integral of f over [lo, hi] with Gauss-Legendre
// rules of doubling order until two successive estimates agree to epsrel.
// It reports false when maxNodes is reached first.
func integrate(f func(float64) float64, lo, hi, epsrel float64, maxNodes int) (float64, bool) {
	if lo == hi {
		return 0, true
	}
	sign := 1.0
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}

	n := quadStartNodes
	prev := quad.Fixed(f, lo, hi, n, quad.Legendre{}, 0)
	for n < maxNodes {
		n *= 2
		cur := quad.Fixed(f, lo, hi, n, quad.Legendre{}, 0)
		if math.IsNaN(cur) {
			return cur, false
		}
		if math.Abs(cur-prev) <= epsrel*math.Abs(cur) || cur == prev {
			return sign * cur, true
		}
		prev = cur
	}
	return sign * prev, false
}

// maxNodes derives the node budget of integrate from N_ITERATION.
func (c *Cosmology) maxNodes() int {
	n := int(c.GSL.NIteration) * 16
	if n < 2*quadStartNodes {
		n = 2 * quadStartNodes
	}
	return n
}
