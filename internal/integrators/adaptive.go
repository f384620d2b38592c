package integrators

import (
	"math"

	"github.com/san-kum/geodyn/internal/ode"
)

// AdaptiveRK4 is a step-doubling adaptive Runge-Kutta integrator. Each
// iteration compares one full step of size h against two consecutive
// half-size steps from the same starting state; the Euclidean norm of
// the difference estimates the local truncation error.
//
// Accepted steps record the half-step result (the more accurate of the
// two), advance the parameter by h, and grow h by 1.5x up to maxDt.
// Rejected steps shrink h by half down to minDt and retry without
// advancing; they never appear in the output trajectory.
type AdaptiveRK4 struct {
	dt0   float64
	tol   float64
	minDt float64
	maxDt float64
}

// NewAdaptiveRK4 creates an adaptive integrator. The initial step and
// tolerance must be positive and the step bounds must be ordered.
func NewAdaptiveRK4(dtInitial, tolerance, minDt, maxDt float64) (*AdaptiveRK4, error) {
	if dtInitial <= 0 {
		return nil, ode.ErrStepSize
	}
	if tolerance <= 0 {
		return nil, ode.ErrTolerance
	}
	if minDt > maxDt {
		return nil, ode.ErrStepBounds
	}
	return &AdaptiveRK4{dt0: dtInitial, tol: tolerance, minDt: minDt, maxDt: maxDt}, nil
}

// Solve integrates rhs from t0 to tMax, adapting the step size to keep
// the step-doubling error estimate below the tolerance.
func (a *AdaptiveRK4) Solve(rhs ode.RHS, y0 ode.State, t0, tMax float64) (ode.Trajectory, error) {
	path := make(ode.Trajectory, 0, 1024)

	y := y0.Clone()
	t := t0
	h := a.dt0

	path = append(path, ode.Sample{T: t, Y: y.Clone()})

	for t < tMax {
		yFull := rk4Step(rhs, t, y, h)
		yMid := rk4Step(rhs, t, y, h*0.5)
		yHalf := rk4Step(rhs, t+h*0.5, yMid, h*0.5)

		errNorm := yFull.Sub(yHalf).Norm()

		if errNorm < a.tol {
			y = yHalf
			t += h
			path = append(path, ode.Sample{T: t, Y: y.Clone()})
			h = math.Min(h*1.5, a.maxDt)
		} else {
			h = math.Max(h*0.5, a.minDt)
		}
	}

	return path, nil
}

// rk4Step performs one classical Runge-Kutta step without shared
// scratch state, so the doubling comparison cannot alias buffers.
func rk4Step(rhs ode.RHS, t float64, y ode.State, h float64) ode.State {
	k1 := rhs(t, y)
	k2 := rhs(t+h*0.5, y.Add(k1.Scale(h*0.5)))
	k3 := rhs(t+h*0.5, y.Add(k2.Scale(h*0.5)))
	k4 := rhs(t+h, y.Add(k3.Scale(h)))

	incr := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(h / 6.0)
	return y.Add(incr)
}
