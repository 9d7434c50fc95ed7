package problems

import (
	"math"
	"testing"

	"github.com/san-kum/fieldtrace/internal/field"
	"github.com/san-kum/fieldtrace/internal/flow"
)

func TestFieldLineTangentUniformField(t *testing.T) {
	// Horizontal uniform field: B^φ stays nonzero near φ=0.
	p := NewFieldLine(&field.Uniform{B: [3]float64{0.2, 1.0, 0.3}}, 1.0, 0.0, 1)

	samples := []struct {
		phi float64
		x   flow.State
	}{
		{0.1, flow.State{1.2, 0.3}},
		{0.9, flow.State{0.7, -0.4}},
	}
	for _, c := range samples {
		compareL(t, linearization(p, c.phi, c.x), linearizationFD(p, c.phi, c.x, 1e-6), 1e-6)
	}
}

func TestFieldLineTangentDipoleField(t *testing.T) {
	d := &field.Dipole{Moment: [3]float64{0, 0, 1.0}}
	p := NewFieldLine(d, 1.0, 0.0, 1)

	// Points away from R=0 and away from vanishing B^φ: the dipole of a
	// vertical moment has no toroidal component, so tilt the moment.
	d.Moment = [3]float64{0.3, 0.9, 0.4}

	samples := []struct {
		phi float64
		x   flow.State
	}{
		{0.2, flow.State{1.5, 0.6}},
		{2.0, flow.State{0.9, -0.8}},
	}
	for _, c := range samples {
		compareL(t, linearization(p, c.phi, c.x), linearizationFD(p, c.phi, c.x, 1e-6), 1e-5)
	}
}

func TestFieldLinePureToroidalField(t *testing.T) {
	// B = B0 (−y, x, 0)/(x²+y²) has only a toroidal component, so field
	// lines are circles: dR/dφ = dZ/dφ = 0 and the linearization vanishes.
	b0 := 2.5
	src, err := field.NewFunc(
		func(xyz [3]float64) [3]float64 {
			r2 := xyz[0]*xyz[0] + xyz[1]*xyz[1]
			return [3]float64{-b0 * xyz[1] / r2, b0 * xyz[0] / r2, 0}
		},
		func(xyz [3]float64) [3][3]float64 {
			x, y := xyz[0], xyz[1]
			r2 := x*x + y*y
			r4 := r2 * r2
			return [3][3]float64{
				{2 * b0 * x * y / r4, -b0 * (r2 - 2*y*y) / r4, 0},
				{b0 * (r2 - 2*x*x) / r4, -2 * b0 * x * y / r4, 0},
				{0, 0, 0},
			}
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	p := NewFieldLine(src, 1.0, 0.0, 1)

	dx := p.F(0.7, flow.State{1.4, 0.2})
	if math.Abs(dx[0]) > 1e-13 || math.Abs(dx[1]) > 1e-13 {
		t.Errorf("toroidal field should give zero RHS, got (%g, %g)", dx[0], dx[1])
	}

	out := p.FTangent(0.7, flow.NewExtended(flow.State{1.4, 0.2}))
	for i, v := range out {
		if math.Abs(v) > 1e-12 {
			t.Errorf("extended derivative component %d = %g, want 0", i, v)
		}
	}
}

func TestFieldLineVanishingToroidalComponent(t *testing.T) {
	// A purely vertical field is tangent to every constant-φ plane; the
	// quotient by B^φ is undefined and must surface as non-finite values,
	// not be clamped.
	p := NewFieldLine(&field.Uniform{B: [3]float64{0, 0, 1}}, 1.0, 0.0, 1)
	dx := p.F(0.3, flow.State{1.1, 0.0})
	if dx.IsValid() {
		t.Errorf("expected non-finite RHS for vanishing B^φ, got %v", dx)
	}
}

func TestCylindricalConvertCoords(t *testing.T) {
	p := NewFieldLine(&field.Uniform{B: [3]float64{0, 1, 0}}, 1.0, 0.0, 5)

	period := 2 * math.Pi / 5
	in := flow.State{1.3, -0.2, 3.7}
	once := p.ConvertCoords(in)
	twice := p.ConvertCoords(once)

	if once[0] != in[0] || once[1] != in[1] {
		t.Errorf("R/Z components altered by wrap: %v vs %v", once, in)
	}
	if once[2] < 0 || once[2] >= period {
		t.Errorf("φ = %g outside [0, %g)", once[2], period)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("component %d: wrap not idempotent", i)
		}
	}
}
