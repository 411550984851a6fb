package dispatch

import (
	"fmt"
	"math"
)

// Real is any built-in integer or floating-point type. Integers are
// promoted to float64.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Value is either a single real number or a 1-D sequence of reals.
type Value struct {
	x     float64
	xs    []float64
	isSeq bool
}

// Scalar wraps a single number.
func Scalar[T Real](x T) Value {
	return Value{x: float64(x)}
}

// Sequence wraps a slice without copying it.
func Sequence(xs []float64) Value {
	if xs == nil {
		xs = []float64{}
	}
	return Value{xs: xs, isSeq: true}
}

// SequenceOf converts a slice of any real type.
func SequenceOf[T Real](xs []T) Value {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return Value{xs: out, isSeq: true}
}

// IsScalar reports whether v holds a single number.
func (v Value) IsScalar() bool { return !v.isSeq }

// Float returns the scalar value, or NaN for a sequence.
func (v Value) Float() float64 {
	if v.isSeq {
		return math.NaN()
	}
	return v.x
}

// Slice returns the sequence, or a one-element slice for a scalar.
func (v Value) Slice() []float64 {
	if v.isSeq {
		return v.xs
	}
	return []float64{v.x}
}

// Len is the number of elements; 1 for a scalar.
func (v Value) Len() int {
	if v.isSeq {
		return len(v.xs)
	}
	return 1
}

// Map applies f elementwise and keeps the shape of v.
func (v Value) Map(f func(float64) float64) Value {
	if !v.isSeq {
		return Value{x: f(v.x)}
	}
	out := make([]float64, len(v.xs))
	for i, x := range v.xs {
		out[i] = f(x)
	}
	return Sequence(out)
}

// Zip combines two values of the same shape elementwise. A scalar is
// broadcast against a sequence; the result takes the sequence shape.
func Zip(a, b Value, f func(x, y float64) float64) (Value, error) {
	switch {
	case a.IsScalar() && b.IsScalar():
		return Value{x: f(a.x, b.x)}, nil
	case a.IsScalar():
		return b.Map(func(y float64) float64 { return f(a.x, y) }), nil
	case b.IsScalar():
		return a.Map(func(x float64) float64 { return f(x, b.x) }), nil
	case len(a.xs) != len(b.xs):
		return Value{}, shapeError("zip: lengths %d and %d differ", len(a.xs), len(b.xs))
	}
	out := make([]float64, len(a.xs))
	for i := range out {
		out[i] = f(a.xs[i], b.xs[i])
	}
	return Sequence(out), nil
}

func (v Value) String() string {
	if v.isSeq {
		return fmt.Sprint(v.xs)
	}
	return fmt.Sprint(v.x)
}
