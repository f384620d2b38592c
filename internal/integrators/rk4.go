package integrators

import (
	"math"

	"github.com/san-kum/geodyn/internal/ode"
)

// RK4 is the classical fixed-step 4-stage Runge-Kutta integrator. The
// final step is clipped so the last sample lands exactly on tMax.
//
// Scratch buffers are reused between steps; an RK4 instance is not safe
// for concurrent use.
type RK4 struct {
	dt      float64
	k1      ode.State
	k2      ode.State
	k3      ode.State
	k4      ode.State
	scratch ode.State
}

// NewRK4 creates a fixed-step integrator. dt must be positive.
func NewRK4(dt float64) (*RK4, error) {
	if dt <= 0 {
		return nil, ode.ErrStepSize
	}
	return &RK4{dt: dt}, nil
}

// Dt returns the configured step size.
func (r *RK4) Dt() float64 { return r.dt }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.k4 = make(ode.State, n)
		r.scratch = make(ode.State, n)
	}
}

// Solve integrates rhs from t0 to tMax and returns every sample,
// including both endpoints.
func (r *RK4) Solve(rhs ode.RHS, y0 ode.State, t0, tMax float64) (ode.Trajectory, error) {
	n := len(y0)
	r.ensureScratch(n)

	steps := int((tMax - t0) / r.dt)
	path := make(ode.Trajectory, 0, steps+2)
	path = append(path, ode.Sample{T: t0, Y: y0.Clone()})

	y := y0.Clone()
	t := t0

	for t < tMax {
		h := math.Min(r.dt, tMax-t)
		y = r.step(rhs, t, y, h)
		t += h
		path = append(path, ode.Sample{T: t, Y: y.Clone()})
	}

	return path, nil
}

func (r *RK4) step(rhs ode.RHS, t float64, y ode.State, h float64) ode.State {
	n := len(y)

	copy(r.k1, rhs(t, y))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, rhs(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, rhs(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*r.k3[i]
	}
	copy(r.k4, rhs(t+h, r.scratch))

	result := make(ode.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}
