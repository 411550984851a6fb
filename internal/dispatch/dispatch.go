package dispatch

import (
	"fmt"

	"github.com/san-kum/halokit/internal/status"
)

// None marks an Entry without fixed extra parameters.
type None struct{}

// Entry is the scalar and vector entry points of a one-argument kernel
// query. P carries fixed extra parameters such as a species label.
type Entry[H status.MessageSource, P any] struct {
	Scalar func(h H, x float64, p P, st *int) float64
	Vector func(h H, p P, xs []float64, n int, st *int) []float64
}

// Unary builds an Entry for a query without extra parameters.
func Unary[H status.MessageSource](
	scalar func(h H, x float64, st *int) float64,
	vector func(h H, xs []float64, n int, st *int) []float64,
) Entry[H, None] {
	return Entry[H, None]{
		Scalar: func(h H, x float64, _ None, st *int) float64 { return scalar(h, x, st) },
		Vector: func(h H, _ None, xs []float64, n int, st *int) []float64 { return vector(h, xs, n, st) },
	}
}

// Call evaluates e on x. The result has the shape of x.
func Call[H status.MessageSource, P any](e Entry[H, P], h H, x Value, p P) (Value, error) {
	st := status.OK
	if x.IsScalar() {
		y := e.Scalar(h, x.Float(), p, &st)
		if err := status.Check(st, h); err != nil {
			return Value{}, err
		}
		return Scalar(y), nil
	}

	xs := x.Slice()
	ys := e.Vector(h, p, xs, len(xs), &st)
	if err := status.Check(st, h); err != nil {
		return Value{}, err
	}
	if len(ys) != len(xs) {
		return Value{}, shapeError("kernel returned %d values for %d inputs", len(ys), len(xs))
	}
	return Sequence(ys), nil
}

// PairedEntry is a two-argument query evaluated elementwise.
type PairedEntry[H status.MessageSource] struct {
	Scalar func(h H, x1, x2 float64, st *int) float64
	Vector func(h H, x1, x2 []float64, n int, st *int) []float64
}

// Paired evaluates e on (x1, x2). Both must be scalars, or sequences of
// equal length; the result has their shape.
func Paired[H status.MessageSource](e PairedEntry[H], h H, x1, x2 Value) (Value, error) {
	if x1.IsScalar() != x2.IsScalar() {
		return Value{}, shapeError("paired arguments must both be scalars or both be sequences")
	}

	st := status.OK
	if x1.IsScalar() {
		y := e.Scalar(h, x1.Float(), x2.Float(), &st)
		if err := status.Check(st, h); err != nil {
			return Value{}, err
		}
		return Scalar(y), nil
	}

	n := x1.Len()
	if x2.Len() != n {
		return Value{}, shapeError("paired arguments have lengths %d and %d", n, x2.Len())
	}
	ys := e.Vector(h, x1.Slice(), x2.Slice(), n, &st)
	if err := status.Check(st, h); err != nil {
		return Value{}, err
	}
	if len(ys) != n {
		return Value{}, shapeError("kernel returned %d values for %d pairs", len(ys), n)
	}
	return Sequence(ys), nil
}

// OuterEntry is a two-argument query evaluated over the grid of both
// inputs. Vector fills n = len(x1)*len(x2) values, row-major over (x1, x2).
type OuterEntry[H status.MessageSource] struct {
	Scalar func(h H, x1, x2 float64, st *int) float64
	Vector func(h H, x1, x2 []float64, n int, st *int) []float64
}

// Outer evaluates e over every combination of x1 and x2. A scalar x1
// needs a scalar x2 and gives a scalar. A sequence x1 gives a sequence of
// len(x1)*len(x2) values, with a scalar x2 counting as length one.
func Outer[H status.MessageSource](e OuterEntry[H], h H, x1, x2 Value) (Value, error) {
	st := status.OK
	if x1.IsScalar() {
		if !x2.IsScalar() {
			return Value{}, shapeError("outer product with scalar first argument needs a scalar second argument")
		}
		y := e.Scalar(h, x1.Float(), x2.Float(), &st)
		if err := status.Check(st, h); err != nil {
			return Value{}, err
		}
		return Scalar(y), nil
	}

	n := x1.Len() * x2.Len()
	ys := e.Vector(h, x1.Slice(), x2.Slice(), n, &st)
	if err := status.Check(st, h); err != nil {
		return Value{}, err
	}
	if len(ys) != n {
		return Value{}, shapeError("kernel returned %d values for a %d x %d grid", len(ys), x1.Len(), x2.Len())
	}
	return Sequence(ys), nil
}

func shapeError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", status.ErrShape, fmt.Sprintf(format, args...))
}
