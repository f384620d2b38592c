// Package ode defines the numeric state, right-hand-side contract, and
// trajectory types shared by the integrators.
//
// A [State] is an ordered sequence of reals of caller-chosen length; the
// geodesic system uses length 8 (4 position + 4 velocity components), but
// nothing here is specific to that system.
//
// # Thread Safety
//
// States and trajectories are plain values. Integrators in
// internal/integrators keep scratch buffers and are not safe for
// concurrent use; give each goroutine its own instance.
package ode
