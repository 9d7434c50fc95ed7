// Package flow provides the core vocabulary for trajectory problems.
//
// The package defines the types shared by every concrete model:
//
//   - [State]: trajectory position in the model's native coordinates
//   - [Extended]: state plus column-major tangent matrix in one buffer
//   - [Problem]: the façade integrators and analysis consumers see
//   - [RHS]: the callback signature integrators step
//
// # Tangent propagation
//
// An extended buffer of a size-n problem has length n+n². The tangent
// block is d(state)/d(state0); the caller seeds it to the identity with
// [NewExtended] and the problem's FTangent propagates dM/dt = L·M, where
// L is the analytic linearization of F at the current point.
//
// # Thread safety
//
// Problems are read-only after construction (apart from explicit
// parameter setters) and RHS evaluation is stateless, so one Problem may
// be shared across parallel trajectories; extended buffers may not.
package flow
