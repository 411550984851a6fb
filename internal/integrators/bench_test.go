package integrators

import "testing"

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	sys := &oscillator{}
	x := []float64{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	sys := &oscillator{}
	x := []float64{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkSolve(b *testing.B) {
	sys := &oscillator{}
	ts := []float64{1, 2, 3, 4, 5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(NewRK45(), sys, []float64{1, 0}, 0, ts, DefaultSolveConfig()); err != nil {
			b.Fatal(err)
		}
	}
}
