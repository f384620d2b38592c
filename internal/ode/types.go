package ode

// RHS evaluates the derivative dY/dt of a first-order system at (t, y).
type RHS func(t float64, y State) State

// Sample is one recorded (t, state) pair along a solution.
type Sample struct {
	T float64
	Y State
}

// Trajectory is the ordered sequence of accepted samples, including both
// endpoints of the integration interval.
type Trajectory []Sample

// Times returns the sample parameters in order.
func (tr Trajectory) Times() []float64 {
	ts := make([]float64, len(tr))
	for i, s := range tr {
		ts[i] = s.T
	}
	return ts
}

// Final returns the last sample; ok is false for an empty trajectory.
func (tr Trajectory) Final() (Sample, bool) {
	if len(tr) == 0 {
		return Sample{}, false
	}
	return tr[len(tr)-1], true
}

// Integrator advances a first-order system from t0 to tMax and returns
// every accepted sample in order.
type Integrator interface {
	Solve(rhs RHS, y0 State, t0, tMax float64) (Trajectory, error)
}
