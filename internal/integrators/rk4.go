// Package integrators provides the ODE steppers that consume the
// [flow.RHS] callback contract. The core problem packages never import
// this package; it exists for the CLI, the tracer, and tests.
package integrators

import "github.com/san-kum/fieldtrace/internal/flow"

// Integrator advances a state by one step of size dt.
type Integrator interface {
	Step(f flow.RHS, x flow.State, t, dt float64) flow.State
}

// Adaptive integrators additionally estimate local error and suggest the
// next step size.
type Adaptive interface {
	Integrator
	StepAdaptive(f flow.RHS, x flow.State, t, dt, tol float64) (flow.State, float64, error)
}

type RK4 struct {
	k1, k2, k3, k4 flow.State
	scratch        flow.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(flow.State, n)
		r.k2 = make(flow.State, n)
		r.k3 = make(flow.State, n)
		r.k4 = make(flow.State, n)
		r.scratch = make(flow.State, n)
	}
}

func (r *RK4) Step(f flow.RHS, x flow.State, t, dt float64) flow.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, f(t, x))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, f(t+dt*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, f(t+dt*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, f(t+dt, r.scratch))

	result := make(flow.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}
