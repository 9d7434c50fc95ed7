package problems

import (
	"math"

	"github.com/san-kum/fieldtrace/internal/equilibrium"
	"github.com/san-kum/fieldtrace/internal/flow"
)

// SpecVolume traces field lines inside one sub-volume of a
// stepped-pressure equilibrium, in the volume's (s, θ) coordinates with
// the toroidal angle ζ as the time-like variable:
//
//	ds/dζ = B^s / B^ζ,  dθ/dζ = B^θ / B^ζ
//
// The sqrt(g) factors in the staged field components cancel in these
// ratios. Evaluation where B^ζ vanishes yields non-finite components.
type SpecVolume struct {
	vol *equilibrium.Volume
}

// NewSpecVolume validates the dataset and stages volume lvol; the errors
// it can return are the adapter's configuration errors.
func NewSpecVolume(d *equilibrium.Data, lvol int) (*SpecVolume, error) {
	vol, err := equilibrium.NewVolume(d, lvol)
	if err != nil {
		return nil, err
	}
	return &SpecVolume{vol: vol}, nil
}

// Volume exposes the staged configuration (read-only by convention).
func (p *SpecVolume) Volume() *equilibrium.Volume { return p.vol }

func (p *SpecVolume) Size() int { return 2 }

func (p *SpecVolume) F(zeta float64, x flow.State) flow.State {
	b := p.vol.BField(x[0], x[1], zeta)
	return flow.State{b[0] / b[2], b[1] / b[2]}
}

func (p *SpecVolume) FTangent(zeta float64, e flow.Extended) flow.Extended {
	x, m := e.Split(2)
	b, db := p.vol.BFieldDeriv(x[0], x[1], zeta)

	dx := [2]float64{b[0] / b[2], b[1] / b[2]}

	// Quotient rule over the (s, θ) columns of the field derivative.
	var l [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			l[i][j] = db[i][j]/b[2] - b[i]/(b[2]*b[2])*db[2][j]
		}
	}
	return flow.Propagate2(dx, l, m)
}

// ConvertCoords wraps θ by 2π and ζ by one field period; s passes through.
func (p *SpecVolume) ConvertCoords(coords flow.State) flow.State {
	out := coords.Clone()
	if len(out) > 1 {
		out[1] = wrap(out[1], 2*math.Pi)
	}
	if len(out) > 2 {
		nfp := p.vol.Nfp
		if nfp < 1 {
			nfp = 1
		}
		out[2] = wrap(out[2], 2*math.Pi/float64(nfp))
	}
	return out
}

func (p *SpecVolume) Plot() flow.PlotInfo {
	return flow.PlotInfo{Kind: "yx", XIndex: 1, YIndex: 0, XLabel: "θ", YLabel: "s"}
}
