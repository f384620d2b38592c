package integrators

import (
	"testing"

	"github.com/san-kum/geodyn/internal/ode"
)

func BenchmarkRK4Oscillator(b *testing.B) {
	integ, _ := NewRK4(0.001)
	y0 := ode.State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integ.Solve(oscillator, y0, 0, 1.0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdaptiveRK4Oscillator(b *testing.B) {
	integ, _ := NewAdaptiveRK4(0.001, 1e-8, 1e-8, 0.01)
	y0 := ode.State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integ.Solve(oscillator, y0, 0, 1.0); err != nil {
			b.Fatal(err)
		}
	}
}
