// Package coords implements the position-dependent transform kernel
// between Cartesian (x, y, z) and cylindrical (R, φ, Z) frames.
//
// The inverse Jacobian is singular at R = 0 (the 1/R entries diverge).
// The kernel does not guard this: trajectories must stay off the
// coordinate origin, and consumers detect the resulting non-finite
// values.
package coords

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cartesian maps a cylindrical position to (x, y, z).
func Cartesian(r, phi, z float64) [3]float64 {
	return [3]float64{r * math.Cos(phi), r * math.Sin(phi), z}
}

// InvJacobian returns the matrix mapping Cartesian vector components into
// cylindrical (R, φ, Z) components at the given position:
//
//	[ cosφ      sinφ     0 ]
//	[ -sinφ/R   cosφ/R   0 ]
//	[ 0         0        1 ]
func InvJacobian(r, phi float64) [3][3]float64 {
	sin, cos := math.Sincos(phi)
	return [3][3]float64{
		{cos, sin, 0},
		{-sin / r, cos / r, 0},
		{0, 0, 1},
	}
}

// Jacobian returns the cylindrical→Cartesian matrix, computed as the
// linear-algebra inverse of InvJacobian rather than from a second set of
// analytic formulas, so the two can never diverge. The error is non-nil
// only when the inverse Jacobian is numerically singular (R near 0).
func Jacobian(r, phi float64) ([3][3]float64, error) {
	inv := InvJacobian(r, phi)
	a := mat.NewDense(3, 3, []float64{
		inv[0][0], inv[0][1], inv[0][2],
		inv[1][0], inv[1][1], inv[1][2],
		inv[2][0], inv[2][1], inv[2][2],
	})
	var out mat.Dense
	if err := out.Inverse(a); err != nil {
		return [3][3]float64{}, err
	}
	var j [3][3]float64
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			j[i][k] = out.At(i, k)
		}
	}
	return j, nil
}

// DInvJacobianTerm returns the product-rule correction that arises when a
// Cartesian field gradient is transported into the cylindrical frame: the
// position derivative of InvJacobian contracted with the current Cartesian
// field components (bx, by). Without this term the linearization would be
// the one of a frozen coordinate frame.
func DInvJacobianTerm(r, phi, bx, by float64) [3][3]float64 {
	sin, cos := math.Sincos(phi)
	return [3][3]float64{
		{0, -bx*sin + by*cos, 0},
		{bx*sin/(r*r) - by*cos/(r*r), -bx*cos/r - by*sin/r, 0},
		{0, 0, 0},
	}
}

// Mul3 returns the matrix product a·b.
func Mul3(a, b [3][3]float64) [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return c
}

// Add3 returns the matrix sum a+b.
func Add3(a, b [3][3]float64) [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] + b[i][j]
		}
	}
	return c
}

// MulVec3 returns the matrix-vector product a·v.
func MulVec3(a [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = a[i][0]*v[0] + a[i][1]*v[1] + a[i][2]*v[2]
	}
	return out
}
