package field

import "math"

// Dipole is a point magnetic dipole in units where μ0/4π = 1:
//
//	B(r) = 3 r (m·r) / |r|⁵ − m / |r|³
//
// The field and its gradient diverge at the dipole position; the package
// does not guard that, matching the kernel's treatment of R = 0.
type Dipole struct {
	Moment [3]float64
	Center [3]float64
}

func (d *Dipole) Value(xyz [3]float64) [3]float64 {
	x := sub(xyz, d.Center)
	r2 := dot(x, x)
	r := math.Sqrt(r2)
	r3 := r * r2
	r5 := r3 * r2
	mr := dot(d.Moment, x)

	var b [3]float64
	for i := 0; i < 3; i++ {
		b[i] = 3*x[i]*mr/r5 - d.Moment[i]/r3
	}
	return b
}

func (d *Dipole) Gradient(xyz [3]float64) [3][3]float64 {
	x := sub(xyz, d.Center)
	r2 := dot(x, x)
	r := math.Sqrt(r2)
	r5 := r * r2 * r2
	r7 := r5 * r2
	mr := dot(d.Moment, x)

	var g [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g[i][j] = 3*(x[i]*d.Moment[j]+d.Moment[i]*x[j])/r5 - 15*x[i]*x[j]*mr/r7
			if i == j {
				g[i][j] += 3 * mr / r5
			}
		}
	}
	return g
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
