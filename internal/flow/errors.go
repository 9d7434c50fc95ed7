package flow

import "errors"

// Domain errors shared across problem implementations and consumers.
var (
	// ErrSingular indicates a trajectory reached a coordinate or field
	// singularity (R=0, vanishing angular field component). The RHS itself
	// returns non-finite values; consumers wrap them with this error.
	ErrSingular = errors.New("flow: singular evaluation on trajectory")

	// ErrNotImplemented indicates a field capability was constructed
	// without one of its required evaluation functions.
	ErrNotImplemented = errors.New("flow: field capability not implemented")

	// ErrDimensionMismatch indicates a state buffer whose length does not
	// match the problem size.
	ErrDimensionMismatch = errors.New("flow: state dimension mismatch")

	// ErrUnknownParam indicates a parameter name a problem does not carry.
	ErrUnknownParam = errors.New("flow: unknown parameter")
)
