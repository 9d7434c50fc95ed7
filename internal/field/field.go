// Package field provides magnetic-field sources evaluated at Cartesian
// points.
//
// Every source implements [Field]: a value and a gradient, both produced
// fresh per evaluation and never cached, since a source may sit in front
// of an external evaluator. Supplying both methods is a compile-time
// obligation of the interface; the [Func] adapter converts it into a
// construction-time check for callers wiring in external callbacks.
package field

// Field evaluates a magnetic field and its gradient at a Cartesian point.
// Implementations are pure: they may call external resources but must not
// mutate shared state.
type Field interface {
	// Value returns the field components (Bx, By, Bz) at xyz.
	Value(xyz [3]float64) [3]float64

	// Gradient returns the tensor ∂B_i/∂x_j at xyz.
	Gradient(xyz [3]float64) [3][3]float64
}

// Uniform is a constant field; its gradient vanishes identically.
type Uniform struct {
	B [3]float64
}

func (u *Uniform) Value(xyz [3]float64) [3]float64 {
	return u.B
}

func (u *Uniform) Gradient(xyz [3]float64) [3][3]float64 {
	return [3][3]float64{}
}
