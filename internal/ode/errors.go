package ode

import "errors"

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep fell below MinDt.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrSolverFailure indicates the stage equations could not be solved.
	ErrSolverFailure = errors.New("ode: stage solve failed")

	// ErrDimensionMismatch indicates state length does not match the system.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)
