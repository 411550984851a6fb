package transform

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/halokit/internal/status"
)

// Curves is one sampled curve or a batch of curves, one per row.
type Curves struct {
	single []float64
	batch  *mat.Dense
}

// Single wraps one curve.
func Single(ys []float64) Curves {
	return Curves{single: ys}
}

// Batch wraps a matrix whose rows are curves.
func Batch(m *mat.Dense) Curves {
	return Curves{batch: m}
}

// BatchOf builds a batch from equal-length rows.
func BatchOf(rows [][]float64) (Curves, error) {
	if len(rows) == 0 {
		return Curves{}, fmt.Errorf("%w: empty batch", status.ErrShape)
	}
	n := len(rows[0])
	data := make([]float64, 0, len(rows)*n)
	for i, r := range rows {
		if len(r) != n {
			return Curves{}, fmt.Errorf("%w: row %d has %d samples, want %d", status.ErrShape, i, len(r), n)
		}
		data = append(data, r...)
	}
	if n == 0 {
		return Curves{}, fmt.Errorf("%w: empty rows", status.ErrShape)
	}
	return Batch(mat.NewDense(len(rows), n, data)), nil
}

// IsBatch reports whether c holds a batch.
func (c Curves) IsBatch() bool { return c.batch != nil }

// Dims returns the number of curves and samples per curve.
func (c Curves) Dims() (curves, samples int) {
	if c.batch != nil {
		return c.batch.Dims()
	}
	return 1, len(c.single)
}

// Row returns curve i.
func (c Curves) Row(i int) []float64 {
	if c.batch == nil {
		return c.single
	}
	return mat.Row(nil, i, c.batch)
}

// Matrix returns the curves as a matrix, one row per curve.
func (c Curves) Matrix() *mat.Dense {
	if c.batch != nil {
		return c.batch
	}
	return mat.NewDense(1, len(c.single), append([]float64(nil), c.single...))
}

// flatten lays the curves out back to back.
func (c Curves) flatten() []float64 {
	if c.batch == nil {
		return c.single
	}
	r, n := c.batch.Dims()
	out := make([]float64, 0, r*n)
	for i := 0; i < r; i++ {
		out = append(out, c.batch.RawRowView(i)...)
	}
	return out
}

// like reshapes flat data into the shape of c.
func (c Curves) like(flat []float64) Curves {
	if c.batch == nil {
		return Single(flat)
	}
	r, n := c.batch.Dims()
	return Batch(mat.NewDense(r, n, flat))
}
