package problems

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fieldtrace/internal/equilibrium"
	"github.com/san-kum/fieldtrace/internal/flow"
)

// testData builds a two-volume axisymmetric dataset with one shear mode:
// in the outer volume, A_θ = s and A_ζ = -2a·s², giving
// sqrt(g)B = (0, 4a·s, 1) plus a small m=1 ripple.
func testData(ripple float64) *equilibrium.Data {
	a := 0.3
	zero := []float64{0, 0}
	return &equilibrium.Data{
		Version:   3.0,
		Mvol:      2,
		Mpol:      1,
		Ntor:      1,
		Igeometry: 3,
		Istellsym: 1,
		Nfp:       1,
		MN:        2,
		Im:        []int{0, 1},
		In:        []int{0, 1},
		Lrad:      []int{2, 2},
		Rpol:      1,
		Rtor:      1,
		Ate: [][][]float64{
			{{0, 0}, {1, ripple}, {0, 0}},
			// T1 = s carries A_θ = s; the m=1 ripple sits on T2.
			{{0, 0}, {1, 0}, {0, ripple}},
		},
		Aze: [][][]float64{
			{{-a, 0}, zero, {-a, ripple}},
			// A_ζ = -a(T0 + T2) = -2a·s².
			{{-a, 0}, zero, {-a, ripple}},
		},
	}
}

func TestSpecVolumeScrewPinchField(t *testing.T) {
	p, err := NewSpecVolume(testData(0), 2)
	if err != nil {
		t.Fatal(err)
	}

	a := 0.3
	for _, s := range []float64{-0.7, 0.0, 0.5, 0.9} {
		b := p.Volume().BField(s, 1.2, 0.4)
		want := [3]float64{0, 4 * a * s, 1}
		for i := 0; i < 3; i++ {
			if math.Abs(b[i]-want[i]) > 1e-12 {
				t.Errorf("s=%g: B[%d] = %g, want %g", s, i, b[i], want[i])
			}
		}
	}
}

func TestSpecVolumeRHS(t *testing.T) {
	p, err := NewSpecVolume(testData(0), 2)
	if err != nil {
		t.Fatal(err)
	}

	// Pure shear: ds/dζ = 0, dθ/dζ = 4a·s.
	dx := p.F(0.0, flow.State{0.5, 0.3})
	if math.Abs(dx[0]) > 1e-12 {
		t.Errorf("ds/dζ = %g, want 0", dx[0])
	}
	if math.Abs(dx[1]-4*0.3*0.5) > 1e-12 {
		t.Errorf("dθ/dζ = %g, want %g", dx[1], 4*0.3*0.5)
	}
}

func TestSpecVolumeTangentMatchesFiniteDifference(t *testing.T) {
	p, err := NewSpecVolume(testData(0.02), 2)
	if err != nil {
		t.Fatal(err)
	}

	samples := []struct {
		zeta float64
		x    flow.State
	}{
		{0.0, flow.State{0.4, 1.0}},
		{1.7, flow.State{-0.3, 2.2}},
		{4.1, flow.State{0.8, 5.5}},
	}
	for _, c := range samples {
		compareL(t, linearization(p, c.zeta, c.x), linearizationFD(p, c.zeta, c.x, 1e-6), 1e-7)
	}
}

func TestSpecVolumeCoordSingularRegularization(t *testing.T) {
	// Volume 1 of an Igeometry>=2 dataset carries the coordinate
	// singularity: the m=1 basis picks up the sbar^(1/2) factor, so the
	// ripple contribution differs from the outer volume's.
	inner, err := NewSpecVolume(testData(0.05), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !inner.Volume().CoordSingular {
		t.Fatal("volume 1 should be flagged coordinate-singular")
	}
	outer, err := NewSpecVolume(testData(0.05), 2)
	if err != nil {
		t.Fatal(err)
	}
	if outer.Volume().CoordSingular {
		t.Fatal("volume 2 should not be flagged coordinate-singular")
	}

	// Tangent still matches finite differences with the factor in play.
	samples := []flow.State{{0.3, 0.7}, {0.6, 2.0}}
	for _, x := range samples {
		compareL(t, linearization(inner, 0.9, x), linearizationFD(inner, 0.9, x, 1e-6), 1e-6)
	}
}

func TestSpecVolumeConfigurationErrors(t *testing.T) {
	d := testData(0)

	if _, err := NewSpecVolume(d, 0); !errors.Is(err, equilibrium.ErrVolumeOutOfRange) {
		t.Errorf("lvol=0: got %v, want ErrVolumeOutOfRange", err)
	}
	if _, err := NewSpecVolume(d, 3); !errors.Is(err, equilibrium.ErrVolumeOutOfRange) {
		t.Errorf("lvol=3: got %v, want ErrVolumeOutOfRange", err)
	}

	d.Version = 2.0
	if _, err := NewSpecVolume(d, 1); !errors.Is(err, equilibrium.ErrUnsupportedVersion) {
		t.Errorf("version 2.0: got %v, want ErrUnsupportedVersion", err)
	}
}

func TestSpecVolumeConvertCoords(t *testing.T) {
	p, err := NewSpecVolume(testData(0), 2)
	if err != nil {
		t.Fatal(err)
	}

	in := flow.State{0.2, 6.9, -1.0}
	once := p.ConvertCoords(in)
	twice := p.ConvertCoords(once)
	if once[0] != in[0] {
		t.Errorf("s component altered by wrap")
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("component %d: wrap not idempotent", i)
		}
	}
}
