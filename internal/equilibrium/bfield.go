package equilibrium

import "math"

// The magnetic field inside a volume comes from the curl of the staged
// vector potential A = A_θ ∇θ + A_ζ ∇ζ, with
//
//	A_θ = Σ_{l,k} [Ate_{l,k} cos α_k + Ato_{l,k} sin α_k] T_l(s)
//	A_ζ = Σ_{l,k} [Aze_{l,k} cos α_k + Azo_{l,k} sin α_k] T_l(s)
//	α_k = m_k θ − n_k ζ
//
// so that
//
//	sqrt(g) B^s = ∂A_ζ/∂θ − ∂A_θ/∂ζ
//	sqrt(g) B^θ = −∂A_ζ/∂s
//	sqrt(g) B^ζ = ∂A_θ/∂s
//
// The sqrt(g) factor is never divided out: field-line equations take
// component ratios, where it cancels.

// radialBasis evaluates the Chebyshev basis T_0..T_lrad at s together with
// first and second derivatives. In coordinate-singularity volumes each
// mode additionally carries the factor ((1+s)/2)^(m/2), applied by the
// caller via regularize.
func radialBasis(lrad int, s float64) (t, dt, d2t []float64) {
	t = make([]float64, lrad+1)
	dt = make([]float64, lrad+1)
	d2t = make([]float64, lrad+1)
	t[0] = 1
	if lrad >= 1 {
		t[1] = s
		dt[1] = 1
	}
	for l := 2; l <= lrad; l++ {
		t[l] = 2*s*t[l-1] - t[l-2]
		dt[l] = 2*t[l-1] + 2*s*dt[l-1] - dt[l-2]
		d2t[l] = 4*dt[l-1] + 2*s*d2t[l-1] - d2t[l-2]
	}
	return t, dt, d2t
}

// regularize returns the m-dependent singular-volume factor f = sbar^(m/2)
// with sbar = (1+s)/2, and its first two s-derivatives.
func regularize(m int, s float64) (f, df, d2f float64) {
	if m == 0 {
		return 1, 0, 0
	}
	p := float64(m) / 2
	sbar := (1 + s) / 2
	f = math.Pow(sbar, p)
	df = p * math.Pow(sbar, p-1) / 2
	d2f = p * (p - 1) * math.Pow(sbar, p-2) / 4
	return f, df, d2f
}

// radialSums accumulates Σ_l c_l B_l(s) and its first two derivatives for
// one coefficient column, with B_l the (possibly regularized) basis.
type radialSums struct {
	v, d, dd float64
}

func (vol *Volume) sumColumn(coeff [][]float64, k int, t, dt, d2t []float64, f, df, d2f float64) radialSums {
	var s radialSums
	for l := 0; l <= vol.Lrad; l++ {
		c := coeff[l][k]
		if c == 0 {
			continue
		}
		s.v += c * f * t[l]
		s.d += c * (df*t[l] + f*dt[l])
		s.dd += c * (d2f*t[l] + 2*df*dt[l] + f*d2t[l])
	}
	return s
}

// BField returns (sqrt(g)B^s, sqrt(g)B^θ, sqrt(g)B^ζ) at (s, θ, ζ).
func (vol *Volume) BField(s, theta, zeta float64) [3]float64 {
	b, _ := vol.bfield(s, theta, zeta, false)
	return b
}

// BFieldDeriv returns the field components together with their analytic
// derivatives with respect to (s, θ): db[i][0] = ∂b_i/∂s,
// db[i][1] = ∂b_i/∂θ. These feed the tangent-map linearization.
func (vol *Volume) BFieldDeriv(s, theta, zeta float64) (b [3]float64, db [3][2]float64) {
	return vol.bfield(s, theta, zeta, true)
}

func (vol *Volume) bfield(s, theta, zeta float64, withDeriv bool) (b [3]float64, db [3][2]float64) {
	t, dt, d2t := radialBasis(vol.Lrad, s)

	for k := 0; k < vol.MN; k++ {
		m := vol.Im[k]
		n := vol.In[k]
		alpha := float64(m)*theta - float64(n)*zeta
		sin, cos := math.Sincos(alpha)

		f, df, d2f := 1.0, 0.0, 0.0
		if vol.CoordSingular {
			f, df, d2f = regularize(m, s)
		}

		ate := vol.sumColumn(vol.Ate, k, t, dt, d2t, f, df, d2f)
		aze := vol.sumColumn(vol.Aze, k, t, dt, d2t, f, df, d2f)
		var ato, azo radialSums
		if !vol.StellSym {
			ato = vol.sumColumn(vol.Ato, k, t, dt, d2t, f, df, d2f)
			azo = vol.sumColumn(vol.Azo, k, t, dt, d2t, f, df, d2f)
		}

		mf, nf := float64(m), float64(n)

		// sqrt(g)B^s = ∂θAζ − ∂ζAθ: sin and cos coefficients per mode.
		cs := -(mf*aze.v + nf*ate.v)
		cc := mf*azo.v + nf*ato.v
		b[0] += cs*sin + cc*cos

		// sqrt(g)B^θ = −∂sAζ, sqrt(g)B^ζ = ∂sAθ.
		b[1] += -(aze.d*cos + azo.d*sin)
		b[2] += ate.d*cos + ato.d*sin

		if !withDeriv {
			continue
		}

		// ∂s: same angular structure with radial sums differentiated.
		db[0][0] += -(mf*aze.d+nf*ate.d)*sin + (mf*azo.d+nf*ato.d)*cos
		db[1][0] += -(aze.dd*cos + azo.dd*sin)
		db[2][0] += ate.dd*cos + ato.dd*sin

		// ∂θ: d(sin α)/dθ = m cos α, d(cos α)/dθ = −m sin α.
		db[0][1] += cs*mf*cos - cc*mf*sin
		db[1][1] += -(-aze.d*mf*sin + azo.d*mf*cos)
		db[2][1] += -ate.d*mf*sin + ato.d*mf*cos
	}
	return b, db
}
