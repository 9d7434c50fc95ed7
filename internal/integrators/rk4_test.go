package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/fieldtrace/internal/flow"
)

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := flow.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(harmonic, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerConvergesToRK4(t *testing.T) {
	euler := NewEuler()
	rk4 := NewRK4()

	xe := flow.State{1.0, 0.0}
	xr := flow.State{1.0, 0.0}
	dt := 1e-4
	steps := 1000

	for i := 0; i < steps; i++ {
		xe = euler.Step(harmonic, xe, float64(i)*dt, dt)
		xr = rk4.Step(harmonic, xr, float64(i)*dt, dt)
	}

	if math.Abs(xe[0]-xr[0]) > 1e-4 {
		t.Errorf("Euler diverged from RK4 at small dt: %g vs %g", xe[0], xr[0])
	}
}
