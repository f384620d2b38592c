package ode

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 9

	if s[0] != 1 {
		t.Errorf("clone aliased original: s[0] = %v", s[0])
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	if math.Abs(s.Norm()-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %v", s.Norm())
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2}
	b := State{3, 5}

	sum := a.Add(b)
	if sum[0] != 4 || sum[1] != 7 {
		t.Errorf("unexpected sum: %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 2 || diff[1] != 3 {
		t.Errorf("unexpected diff: %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 {
		t.Errorf("unexpected scale: %v", scaled)
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, 2}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestTrajectoryHelpers(t *testing.T) {
	tr := Trajectory{{T: 0, Y: State{1}}, {T: 0.5, Y: State{2}}}

	times := tr.Times()
	if len(times) != 2 || times[1] != 0.5 {
		t.Errorf("unexpected times: %v", times)
	}

	final, ok := tr.Final()
	if !ok || final.T != 0.5 {
		t.Errorf("unexpected final sample: %+v ok=%v", final, ok)
	}

	if _, ok := (Trajectory{}).Final(); ok {
		t.Error("empty trajectory reported a final sample")
	}
}
