package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/geodyn/internal/ode"
)

func TestNewAdaptiveRK4Validation(t *testing.T) {
	if _, err := NewAdaptiveRK4(0, 1e-6, 1e-8, 0.1); err != ode.ErrStepSize {
		t.Errorf("expected ErrStepSize, got %v", err)
	}
	if _, err := NewAdaptiveRK4(0.01, 0, 1e-8, 0.1); err != ode.ErrTolerance {
		t.Errorf("expected ErrTolerance, got %v", err)
	}
	if _, err := NewAdaptiveRK4(0.01, 1e-6, 0.5, 0.1); err != ode.ErrStepBounds {
		t.Errorf("expected ErrStepBounds, got %v", err)
	}
	if _, err := NewAdaptiveRK4(0.01, 1e-6, 1e-8, 0.1); err != nil {
		t.Errorf("valid construction failed: %v", err)
	}
}

func TestAdaptiveConstantDerivative(t *testing.T) {
	// dy/dt = k is integrated exactly by RK4, so every step is accepted
	// and each sample must sit on the analytic line y(t) = y0 + k*(t-t0).
	k := ode.State{2.0, -1.0, 0.5}
	rhs := func(t float64, y ode.State) ode.State { return k.Clone() }

	for _, tol := range []float64{1e-3, 1e-9} {
		integ, err := NewAdaptiveRK4(0.01, tol, 1e-8, 0.5)
		if err != nil {
			t.Fatalf("construction failed: %v", err)
		}

		y0 := ode.State{1, 1, 1}
		path, err := integ.Solve(rhs, y0, 0, 2.0)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}

		for _, s := range path {
			for i := range y0 {
				want := y0[i] + k[i]*s.T
				if math.Abs(s.Y[i]-want) > 1e-9 {
					t.Fatalf("tol=%g t=%v component %d: got %v, want %v", tol, s.T, i, s.Y[i], want)
				}
			}
		}
	}
}

func TestAdaptiveGrowsStepWhenSmooth(t *testing.T) {
	rhs := func(t float64, y ode.State) ode.State { return ode.State{1.0} }

	integ, _ := NewAdaptiveRK4(0.01, 1e-6, 1e-8, 1.0)
	path, err := integ.Solve(rhs, ode.State{0}, 0, 5.0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	first := path[1].T - path[0].T
	last := path[len(path)-1].T - path[len(path)-2].T
	if last <= first {
		t.Errorf("step never grew: first h=%v, last h=%v", first, last)
	}
}

func TestAdaptiveShrinksStepOnStiffSystem(t *testing.T) {
	// Stiff decay with a tolerance near machine precision: the 1.5x
	// growth after each acceptance must eventually trip a rejection, so
	// some later accepted step is smaller than an earlier one.
	rhs := func(t float64, y ode.State) ode.State {
		return ode.State{-50.0 * y[0]}
	}

	integ, err := NewAdaptiveRK4(1e-4, 1e-13, 1e-7, 0.1)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	path, err := integ.Solve(rhs, ode.State{1.0}, 0, 0.05)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	steps := make([]float64, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		steps = append(steps, path[i].T-path[i-1].T)
	}

	shrunk := false
	maxSeen := 0.0
	for _, h := range steps {
		if h < maxSeen*0.99 {
			shrunk = true
			break
		}
		if h > maxSeen {
			maxSeen = h
		}
	}
	if !shrunk {
		t.Errorf("expected a later accepted step smaller than an earlier one, steps: %v...", steps[:min(len(steps), 12)])
	}
}

func TestAdaptiveRejectedStepsNotRecorded(t *testing.T) {
	rhs := func(t float64, y ode.State) ode.State {
		return ode.State{-50.0 * y[0]}
	}

	integ, _ := NewAdaptiveRK4(0.01, 1e-10, 1e-7, 0.1)
	path, err := integ.Solve(rhs, ode.State{1.0}, 0, 0.02)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// Every recorded sample must advance the parameter.
	for i := 1; i < len(path); i++ {
		if path[i].T <= path[i-1].T {
			t.Fatalf("sample %d does not advance time: %v <= %v", i, path[i].T, path[i-1].T)
		}
	}
}

func TestAdaptiveMatchesFixedStepOnOscillator(t *testing.T) {
	fixed, _ := NewRK4(1e-4)
	adaptive, _ := NewAdaptiveRK4(1e-3, 1e-10, 1e-8, 0.01)

	fp, err := fixed.Solve(oscillator, ode.State{1, 0}, 0, 1.0)
	if err != nil {
		t.Fatalf("fixed solve failed: %v", err)
	}
	ap, err := adaptive.Solve(oscillator, ode.State{1, 0}, 0, 1.0)
	if err != nil {
		t.Fatalf("adaptive solve failed: %v", err)
	}

	ff, _ := fp.Final()
	af, _ := ap.Final()

	// The adaptive run may overshoot tMax by part of its last step, so
	// compare against the analytic solution at each final parameter.
	if math.Abs(ff.Y[0]-math.Cos(ff.T)) > 1e-6 {
		t.Errorf("fixed-step drifted from analytic solution: %v vs %v", ff.Y[0], math.Cos(ff.T))
	}
	if math.Abs(af.Y[0]-math.Cos(af.T)) > 1e-6 {
		t.Errorf("adaptive drifted from analytic solution: %v vs %v", af.Y[0], math.Cos(af.T))
	}
}
