// Package integrators implements the Runge-Kutta family used by the
// geodesic solver and any generic ODE caller: a fixed-step classical
// RK4 ([RK4]) and a step-doubling adaptive variant ([AdaptiveRK4]).
// Both satisfy [ode.Integrator].
package integrators
