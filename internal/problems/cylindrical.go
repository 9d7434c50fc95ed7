package problems

import (
	"math"

	"github.com/san-kum/fieldtrace/internal/flow"
)

// Cylindrical carries the geometry shared by problems advanced in the
// (R, Z) plane with the toroidal angle φ as the time-like variable: a
// magnetic-axis guess and the field periodicity.
type Cylindrical struct {
	R0  float64
	Z0  float64
	Nfp int
}

func (c *Cylindrical) Size() int { return 2 }

// ConvertCoords wraps the φ component (index 2) by one field period;
// R and Z pass through.
func (c *Cylindrical) ConvertCoords(coords flow.State) flow.State {
	out := coords.Clone()
	if len(out) > 2 {
		nfp := c.Nfp
		if nfp < 1 {
			nfp = 1
		}
		out[2] = wrap(out[2], 2*math.Pi/float64(nfp))
	}
	return out
}

func (c *Cylindrical) Plot() flow.PlotInfo {
	return flow.PlotInfo{Kind: "xy", XIndex: 0, YIndex: 1, XLabel: "R", YLabel: "Z"}
}
