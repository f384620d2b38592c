package ode

import "errors"

// Construction errors for integrators.
var (
	// ErrStepSize indicates a non-positive step size.
	ErrStepSize = errors.New("ode: step size must be positive")

	// ErrTolerance indicates a non-positive error tolerance.
	ErrTolerance = errors.New("ode: tolerance must be positive")

	// ErrStepBounds indicates min/max step bounds that exclude each other.
	ErrStepBounds = errors.New("ode: min step must not exceed max step")
)
