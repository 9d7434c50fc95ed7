package trace

import (
	"math"

	"github.com/san-kum/fieldtrace/internal/flow"
)

// SlabEnergy evaluates H(q,p,t) = p²/2 − k[cos(2q−t)/2 + cos(3q−2t)/3]
// for a slab-problem state in the (p, q) ordering. The Hamiltonian is
// time-dependent, so it is conserved only for k = 0; the drift is still a
// useful integrator diagnostic at small k.
func SlabEnergy(k float64, x flow.State, t float64) float64 {
	p, q := x[0], x[1]
	return p*p/2 - k*(math.Cos(2*q-t)/2+math.Cos(3*q-2*t)/3)
}

// EnergyDrift returns the relative drift of fn between the first and last
// recorded points of a result.
func EnergyDrift(r *Result, fn func(x flow.State, t float64) float64) float64 {
	if len(r.States) < 2 {
		return 0
	}
	e0 := fn(r.States[0][:r.Size], r.Times[0])
	e1 := fn(r.Final(), r.Times[len(r.Times)-1])
	if e0 == 0 {
		return math.Abs(e1 - e0)
	}
	return math.Abs(e1-e0) / math.Abs(e0)
}

// Stability summarizes the final tangent matrix of an extended run.
type Stability struct {
	Trace float64
	Det   float64

	// SymplecticDrift is |det M − 1|: the flows here preserve the
	// symplectic/flux 2-form, so a propagated tangent map should keep
	// unit determinant up to integrator error.
	SymplecticDrift float64
}

// StabilitySummary inspects the final tangent matrix; ok is false for
// plain (non-tangent) runs.
func StabilitySummary(r *Result) (Stability, bool) {
	m, ok := r.FinalTangent()
	if !ok {
		return Stability{}, false
	}
	det := m.Det()
	return Stability{
		Trace:           m.Trace(),
		Det:             det,
		SymplecticDrift: math.Abs(det - 1),
	}, true
}
