// Package problems provides the concrete trajectory problems.
//
// Each type implements [flow.Problem]:
//
//   - [Slab]: perturbed slab Hamiltonian, analytic tangent
//   - [FieldLine]: field-line tracing of a Cartesian-space field in
//     cylindrical coordinates, tangent via coordinate-Jacobian transport
//     plus the φ-parametrization quotient rule
//   - [SpecVolume]: field-line tracing inside one equilibrium sub-volume
//
// Problems are constructed once per physical configuration and reused
// across trajectories.
package problems
