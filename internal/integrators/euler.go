package integrators

import "github.com/san-kum/fieldtrace/internal/flow"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f flow.RHS, x flow.State, t, dt float64) flow.State {
	dx := f(t, x)
	result := make(flow.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
