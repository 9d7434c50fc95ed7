package problems

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldtrace/internal/flow"
)

// Slab is the perturbed slab Hamiltonian of S.R. Hudson, Phys. Plasmas 11,
// 677 (2004):
//
//	H(q,p,t) = p²/2 − k[cos(2q−t)/2 + cos(3q−2t)/3]
//
// a 1.5-degree-of-freedom flow whose forcing is not separable in t, so the
// tangent map has to come from the explicit linearization below. The state
// ordering is (p, q).
type Slab struct {
	K float64
}

func NewSlab() *Slab {
	return &Slab{K: 0.002}
}

// SetK updates the perturbation strength; effective on all subsequent
// evaluations.
func (s *Slab) SetK(k float64) {
	s.K = k
}

func (s *Slab) Size() int { return 2 }

func (s *Slab) F(t float64, x flow.State) flow.State {
	p, q := x[0], x[1]
	dp := -s.K * (math.Sin(2*q-t) + math.Sin(3*q-2*t))
	return flow.State{dp, p}
}

func (s *Slab) FTangent(t float64, e flow.Extended) flow.Extended {
	x, m := e.Split(2)
	p, q := x[0], x[1]

	dp := -s.K * (math.Sin(2*q-t) + math.Sin(3*q-2*t))

	// L[0][1] = ∂(dp/dt)/∂q, L[1][0] = ∂(dq/dt)/∂p.
	l := [2][2]float64{
		{0, -s.K * (2*math.Cos(2*q-t) + 3*math.Cos(3*q-2*t))},
		{1, 0},
	}
	return flow.Propagate2([2]float64{dp, p}, l, m)
}

// ConvertCoords wraps the q and t components by 2π; p passes through.
func (s *Slab) ConvertCoords(coords flow.State) flow.State {
	out := coords.Clone()
	for i := 1; i < len(out) && i < 3; i++ {
		out[i] = wrap(out[i], 2*math.Pi)
	}
	return out
}

func (s *Slab) Plot() flow.PlotInfo {
	return flow.PlotInfo{Kind: "yx", XIndex: 1, YIndex: 0, XLabel: "q", YLabel: "p"}
}

func (s *Slab) GetParams() map[string]float64 {
	return map[string]float64{"k": s.K}
}

func (s *Slab) SetParam(name string, value float64) error {
	if name != "k" {
		return fmt.Errorf("%w: %q", flow.ErrUnknownParam, name)
	}
	s.K = value
	return nil
}

// wrap reduces v into [0, period). Already-canonical values pass through
// unchanged, which makes the operation idempotent.
func wrap(v, period float64) float64 {
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	return v
}
