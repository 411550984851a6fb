package dispatch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/halokit/internal/status"
)

type fakeHandle struct {
	msg         string
	scalarCalls int
	vectorCalls int
	lastN       int
}

func (f *fakeHandle) StatusMessage() string { return f.msg }

// squareEntry returns scale*x*x and fails on negative input.
func squareEntry() Entry[*fakeHandle, float64] {
	eval := func(h *fakeHandle, x, scale float64, st *int) float64 {
		if x < 0 {
			*st = status.SplineEv
			h.msg = "negative input"
			return math.NaN()
		}
		return scale * x * x
	}
	return Entry[*fakeHandle, float64]{
		Scalar: func(h *fakeHandle, x float64, scale float64, st *int) float64 {
			h.scalarCalls++
			return eval(h, x, scale, st)
		},
		Vector: func(h *fakeHandle, scale float64, xs []float64, n int, st *int) []float64 {
			h.vectorCalls++
			h.lastN = n
			out := make([]float64, n)
			for i := range out {
				out[i] = eval(h, xs[i], scale, st)
			}
			return out
		},
	}
}

func TestCallPreservesShape(t *testing.T) {
	h := &fakeHandle{}
	e := squareEntry()

	y, err := Call(e, h, Scalar(3), 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if !y.IsScalar() || y.Float() != 18 {
		t.Errorf("scalar call = %v", y)
	}

	ys, err := Call(e, h, Sequence([]float64{1, 2, 3}), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if ys.IsScalar() {
		t.Fatal("sequence input gave scalar output")
	}
	if diff := cmp.Diff([]float64{1, 4, 9}, ys.Slice()); diff != "" {
		t.Errorf("sequence call (-want +got):\n%s", diff)
	}
	if h.scalarCalls != 1 || h.vectorCalls != 1 || h.lastN != 3 {
		t.Errorf("calls: scalar=%d vector=%d n=%d", h.scalarCalls, h.vectorCalls, h.lastN)
	}
}

func TestCallPromotesIntegers(t *testing.T) {
	h := &fakeHandle{}
	y, err := Call(squareEntry(), h, Scalar(int64(4)), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if y.Float() != 16 {
		t.Errorf("got %v", y)
	}

	ys, err := Call(squareEntry(), h, SequenceOf([]int{1, 2}), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 4}, ys.Slice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCallEmptySequence(t *testing.T) {
	ys, err := Call(squareEntry(), &fakeHandle{}, Sequence(nil), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if ys.IsScalar() || ys.Len() != 0 {
		t.Errorf("got %v", ys)
	}
}

func TestCallTranslatesStatus(t *testing.T) {
	h := &fakeHandle{}
	_, err := Call(squareEntry(), h, Sequence([]float64{1, -1, 2}), 1.0)
	if !errors.Is(err, status.ErrSplineEval) {
		t.Fatalf("err = %v", err)
	}
	var kerr *status.KernelError
	if !errors.As(err, &kerr) {
		t.Fatalf("err is %T", err)
	}
	if kerr.Message != "negative input" || kerr.Code != status.SplineEv {
		t.Errorf("kernel error = %+v", kerr)
	}
}

func TestCallRejectsWrongLength(t *testing.T) {
	e := Entry[*fakeHandle, None]{
		Vector: func(h *fakeHandle, _ None, xs []float64, n int, st *int) []float64 {
			return xs[:n-1]
		},
	}
	_, err := Call(e, &fakeHandle{}, Sequence([]float64{1, 2}), None{})
	if !errors.Is(err, status.ErrShape) {
		t.Errorf("err = %v", err)
	}
}

func TestUnary(t *testing.T) {
	e := Unary(
		func(h *fakeHandle, x float64, st *int) float64 { return -x },
		func(h *fakeHandle, xs []float64, n int, st *int) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = -xs[i]
			}
			return out
		},
	)
	y, err := Call(e, &fakeHandle{}, Scalar(2.5), None{})
	if err != nil || y.Float() != -2.5 {
		t.Errorf("got %v, %v", y, err)
	}
}

func sumEntries() (PairedEntry[*fakeHandle], OuterEntry[*fakeHandle]) {
	scalar := func(h *fakeHandle, a, b float64, st *int) float64 { return a + b }
	paired := PairedEntry[*fakeHandle]{
		Scalar: scalar,
		Vector: func(h *fakeHandle, x1, x2 []float64, n int, st *int) []float64 {
			h.lastN = n
			out := make([]float64, n)
			for i := range out {
				out[i] = x1[i] + x2[i]
			}
			return out
		},
	}
	outer := OuterEntry[*fakeHandle]{
		Scalar: scalar,
		Vector: func(h *fakeHandle, x1, x2 []float64, n int, st *int) []float64 {
			h.lastN = n
			out := make([]float64, 0, n)
			for _, a := range x1 {
				for _, b := range x2 {
					out = append(out, a+b)
				}
			}
			return out
		},
	}
	return paired, outer
}

func TestPaired(t *testing.T) {
	paired, _ := sumEntries()
	h := &fakeHandle{}

	y, err := Paired(paired, h, Scalar(1), Scalar(2))
	if err != nil || !y.IsScalar() || y.Float() != 3 {
		t.Errorf("scalar pair = %v, %v", y, err)
	}

	ys, err := Paired(paired, h, Sequence([]float64{1, 2}), Sequence([]float64{10, 20}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{11, 22}, ys.Slice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if h.lastN != 2 {
		t.Errorf("n = %d", h.lastN)
	}
}

func TestPairedRejectsMismatch(t *testing.T) {
	paired, _ := sumEntries()
	tests := []struct {
		name   string
		x1, x2 Value
	}{
		{"unequal lengths", Sequence([]float64{1, 2}), Sequence([]float64{1})},
		{"scalar and sequence", Scalar(1), Sequence([]float64{1})},
		{"sequence and scalar", Sequence([]float64{1}), Scalar(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &fakeHandle{}
			_, err := Paired(paired, h, tt.x1, tt.x2)
			if !errors.Is(err, status.ErrShape) {
				t.Errorf("err = %v", err)
			}
			if h.lastN != 0 {
				t.Error("kernel was called")
			}
		})
	}
}

func TestOuter(t *testing.T) {
	_, outer := sumEntries()
	h := &fakeHandle{}

	ys, err := Outer(outer, h, Sequence([]float64{1, 2, 3}), Sequence([]float64{10, 20}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{11, 21, 12, 22, 13, 23}, ys.Slice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if h.lastN != 6 {
		t.Errorf("n = %d, want 6", h.lastN)
	}

	ys, err = Outer(outer, h, Sequence([]float64{1, 2}), Scalar(5))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{6, 7}, ys.Slice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	y, err := Outer(outer, h, Scalar(1), Scalar(5))
	if err != nil || !y.IsScalar() || y.Float() != 6 {
		t.Errorf("scalar outer = %v, %v", y, err)
	}

	if _, err := Outer(outer, h, Scalar(1), Sequence([]float64{1, 2})); !errors.Is(err, status.ErrShape) {
		t.Errorf("err = %v", err)
	}
}

func TestZipBroadcasts(t *testing.T) {
	z, err := Zip(Scalar(2), Sequence([]float64{1, 2}), func(a, b float64) float64 { return a * b })
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{2, 4}, z.Slice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := Zip(Sequence([]float64{1}), Sequence([]float64{1, 2}), nil); !errors.Is(err, status.ErrShape) {
		t.Errorf("err = %v", err)
	}
}
