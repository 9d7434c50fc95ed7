package field

import "math"

// Loop is a circular current loop of radius A in the z = Center[2] plane,
// evaluated by discretized Biot–Savart over straight segments (units with
// μ0/4π = 1). The gradient is the exact derivative of the discretized sum,
// so value and gradient stay consistent to machine precision regardless of
// the segment count.
type Loop struct {
	A        float64
	Current  float64
	Center   [3]float64
	Segments int
}

// NewLoop returns a loop with a segment count high enough that the
// discretization error sits well below typical integrator tolerances.
func NewLoop(a, current float64) *Loop {
	return &Loop{A: a, Current: current, Segments: 256}
}

func (l *Loop) segments() int {
	if l.Segments > 0 {
		return l.Segments
	}
	return 256
}

// source returns the midpoint and tangent vector of segment k.
func (l *Loop) source(k, n int) (pos, dl [3]float64) {
	dphi := 2 * math.Pi / float64(n)
	phi := (float64(k) + 0.5) * dphi
	sin, cos := math.Sincos(phi)
	pos = [3]float64{
		l.Center[0] + l.A*cos,
		l.Center[1] + l.A*sin,
		l.Center[2],
	}
	dl = [3]float64{-l.A * sin * dphi, l.A * cos * dphi, 0}
	return pos, dl
}

func (l *Loop) Value(xyz [3]float64) [3]float64 {
	n := l.segments()
	var b [3]float64
	for k := 0; k < n; k++ {
		pos, dl := l.source(k, n)
		s := sub(xyz, pos)
		r2 := dot(s, s)
		r3 := r2 * math.Sqrt(r2)
		c := cross(dl, s)
		for i := 0; i < 3; i++ {
			b[i] += l.Current * c[i] / r3
		}
	}
	return b
}

func (l *Loop) Gradient(xyz [3]float64) [3][3]float64 {
	n := l.segments()
	var g [3][3]float64
	unit := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for k := 0; k < n; k++ {
		pos, dl := l.source(k, n)
		s := sub(xyz, pos)
		r2 := dot(s, s)
		r := math.Sqrt(r2)
		r3 := r2 * r
		r5 := r3 * r2
		c := cross(dl, s)
		for j := 0; j < 3; j++ {
			cj := cross(dl, unit[j])
			for i := 0; i < 3; i++ {
				g[i][j] += l.Current * (cj[i]/r3 - 3*s[j]*c[i]/r5)
			}
		}
	}
	return g
}
