package flow

import "math"

// State is a trajectory position in a problem's native coordinates.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite. Singular evaluations
// (R=0, vanishing angular field component) surface as NaN or Inf here;
// callers stop the trajectory rather than retry.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RHS is the plain right-hand side f(t, x) consumed by integrators.
// Implementations are pure: no state is retained across calls.
type RHS func(t float64, x State) State

// Extended is a contiguous buffer holding a state vector of size n followed
// by the column-major entries of its n×n tangent matrix. The tangent block
// represents d(state)/d(state0); the caller seeds it to the identity at
// trajectory start and the problem only propagates it.
type Extended []float64

// NewExtended copies x into a fresh extended buffer and seeds the tangent
// block to the identity.
func NewExtended(x State) Extended {
	n := len(x)
	e := make(Extended, n+n*n)
	copy(e, x)
	for i := 0; i < n; i++ {
		e[n+i*n+i] = 1
	}
	return e
}

// Split returns the state and tangent views over the buffer for a problem
// of size n. Both alias the underlying storage.
func (e Extended) Split(n int) (State, Tangent) {
	return State(e[:n]), Tangent{N: n, Data: e[n : n+n*n]}
}

// Tangent is a column-major square-matrix view over a slice, typically the
// tail of an Extended buffer.
type Tangent struct {
	N    int
	Data []float64
}

func (m Tangent) At(i, j int) float64     { return m.Data[j*m.N+i] }
func (m Tangent) Set(i, j int, v float64) { m.Data[j*m.N+i] = v }

// Det returns the determinant, defined for the 2×2 case every shipped
// problem uses.
func (m Tangent) Det() float64 {
	return m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
}

// Trace returns the sum of diagonal entries.
func (m Tangent) Trace() float64 {
	t := 0.0
	for i := 0; i < m.N; i++ {
		t += m.At(i, i)
	}
	return t
}

// Propagate2 packs the plain derivative dx and dM/dt = L·M into a fresh
// extended buffer for the 2×2 tangent case. Centralizing the flattening
// here keeps the column-major convention in one place.
func Propagate2(dx [2]float64, l [2][2]float64, m Tangent) Extended {
	out := make(Extended, 6)
	out[0], out[1] = dx[0], dx[1]
	dm := Tangent{N: 2, Data: out[2:]}
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			dm.Set(i, j, l[i][0]*m.At(0, j)+l[i][1]*m.At(1, j))
		}
	}
	return out
}

// NaNExtended returns an extended buffer filled with NaN, used when an
// evaluation hits a coordinate singularity.
func NaNExtended(n int) Extended {
	e := make(Extended, n+n*n)
	for i := range e {
		e[i] = math.NaN()
	}
	return e
}
