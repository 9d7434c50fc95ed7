package problems

import (
	"github.com/san-kum/fieldtrace/internal/coords"
	"github.com/san-kum/fieldtrace/internal/field"
	"github.com/san-kum/fieldtrace/internal/flow"
)

// FieldLine traces field lines of a Cartesian-space magnetic field in
// cylindrical coordinates. The toroidal angle φ plays the role of time:
//
//	dR/dφ = B^R / B^φ,  dZ/dφ = B^Z / B^φ
//
// The division by B^φ is undefined where the field is tangent to a
// constant-φ plane; evaluation there yields non-finite components, which
// callers treat as a degenerate step. Likewise R = 0 is not guarded.
type FieldLine struct {
	Cylindrical
	src field.Field
}

func NewFieldLine(src field.Field, r0, z0 float64, nfp int) *FieldLine {
	return &FieldLine{
		Cylindrical: Cylindrical{R0: r0, Z0: z0, Nfp: nfp},
		src:         src,
	}
}

func (p *FieldLine) F(phi float64, x flow.State) flow.State {
	r, z := x[0], x[1]
	b := p.src.Value(coords.Cartesian(r, phi, z))
	brpz := coords.MulVec3(coords.InvJacobian(r, phi), b)
	return flow.State{brpz[0] / brpz[1], brpz[2] / brpz[1]}
}

func (p *FieldLine) FTangent(phi float64, e flow.Extended) flow.Extended {
	x, m := e.Split(2)
	r, z := x[0], x[1]

	xyz := coords.Cartesian(r, phi, z)
	b := p.src.Value(xyz)
	dbdx := p.src.Gradient(xyz)

	inv := coords.InvJacobian(r, phi)
	jac, err := coords.Jacobian(r, phi)
	if err != nil {
		return flow.NaNExtended(2)
	}

	brpz := coords.MulVec3(inv, b)
	dx := [2]float64{brpz[0] / brpz[1], brpz[2] / brpz[1]}

	// Transport ∂(Bx,By,Bz)/∂(x,y,z) into ∂(B^R,B^φ,B^Z)/∂(R,φ,Z). The
	// additive term accounts for the transform itself varying with
	// position; without it the linearization is that of a frozen frame.
	dbd := coords.Mul3(coords.Mul3(inv, dbdx), jac)
	dbd = coords.Add3(dbd, coords.DInvJacobianTerm(r, phi, b[0], b[1]))

	// Quotient rule for the φ-parametrization: rows and columns R, Z.
	rows := [2]int{0, 2}
	bphi := brpz[1]
	var l [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			l[i][j] = dbd[rows[i]][rows[j]]/bphi - brpz[rows[i]]/(bphi*bphi)*dbd[1][rows[j]]
		}
	}
	return flow.Propagate2(dx, l, m)
}
