package analysis

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/halokit/internal/storage"
)

// Table returns the curve as a two-column table.
func (c *Curve) Table() *storage.Table {
	return &storage.Table{
		Columns: []string{c.XLabel, c.YLabel},
		Data:    [][]float64{c.X, c.Y},
	}
}

// Plot renders the curve as an ASCII chart. Logarithmic axes are plotted
// as log10 of the value; non-positive samples on a log axis are skipped.
func (c *Curve) Plot(width, height int) string {
	ys := make([]float64, 0, len(c.Y))
	for _, y := range c.Y {
		if c.LogY {
			if y <= 0 {
				continue
			}
			y = math.Log10(y)
		}
		ys = append(ys, y)
	}
	if len(ys) == 0 {
		return ""
	}

	caption := fmt.Sprintf("%s: %s vs %s", c.Name, axis(c.YLabel, c.LogY), axis(c.XLabel, c.LogX))
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Range returns the smallest and largest y value.
func (c *Curve) Range() (lo, hi float64) {
	if len(c.Y) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = c.Y[0], c.Y[0]
	for _, y := range c.Y[1:] {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	return lo, hi
}

func axis(label string, log bool) string {
	if log {
		return "log10 " + label
	}
	return label
}
