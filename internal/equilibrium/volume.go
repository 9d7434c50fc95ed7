package equilibrium

import (
	"errors"
	"fmt"
)

// MinVersion is the oldest equilibrium output format the adapter accepts.
const MinVersion = 2.2

var (
	// ErrUnsupportedVersion is returned for datasets below MinVersion.
	ErrUnsupportedVersion = errors.New("equilibrium: output format version not supported")

	// ErrVolumeOutOfRange is returned when the requested sub-volume index
	// lies outside [1, Mvol].
	ErrVolumeOutOfRange = errors.New("equilibrium: volume index out of range")

	// ErrBadCoefficients is returned when coefficient arrays disagree with
	// the declared mode table or radial order.
	ErrBadCoefficients = errors.New("equilibrium: coefficient arrays inconsistent with mode table")
)

// Volume is the staged, immutable configuration for one equilibrium
// sub-volume: everything the spectral field evaluation needs, detached
// from the full dataset. The original binding kept these in a foreign
// module's process-wide variables; owning them per-volume removes the
// hidden coupling between instances.
type Volume struct {
	LVol int
	Lrad int
	MN   int
	Im   []int
	In   []int
	Nfp  int

	// StellSym means the odd-parity coefficient sets vanish identically.
	StellSym bool

	// CoordSingular marks the innermost volume of a geometry whose s=-1
	// boundary is a coordinate axis; the radial basis then carries the
	// m-dependent regularization factor.
	CoordSingular bool

	Rpol, Rtor float64

	// Vector-potential coefficients, indexed [radial order][mode].
	Ate, Ato, Aze, Azo [][]float64
}

// NewVolume validates the dataset and stages sub-volume lvol (1-based,
// as the solver counts volumes). All failures here are fatal
// configuration errors.
func NewVolume(d *Data, lvol int) (*Volume, error) {
	if d.Version < MinVersion {
		return nil, fmt.Errorf("%w: have %.2f, need >= %.2f", ErrUnsupportedVersion, d.Version, MinVersion)
	}
	if lvol < 1 || lvol > d.Mvol {
		return nil, fmt.Errorf("%w: lvol=%d, Mvol=%d", ErrVolumeOutOfRange, lvol, d.Mvol)
	}
	if len(d.Im) != d.MN || len(d.In) != d.MN {
		return nil, fmt.Errorf("%w: mode table length %d/%d, mn=%d", ErrBadCoefficients, len(d.Im), len(d.In), d.MN)
	}
	if len(d.Lrad) < lvol {
		return nil, fmt.Errorf("%w: lrad has %d entries, need %d", ErrBadCoefficients, len(d.Lrad), lvol)
	}

	lrad := d.Lrad[lvol-1]
	stellSym := d.Istellsym != 0

	ate, err := stageCoeff(d.Ate, "ate", lvol, lrad, d.MN, false)
	if err != nil {
		return nil, err
	}
	aze, err := stageCoeff(d.Aze, "aze", lvol, lrad, d.MN, false)
	if err != nil {
		return nil, err
	}
	ato, err := stageCoeff(d.Ato, "ato", lvol, lrad, d.MN, stellSym)
	if err != nil {
		return nil, err
	}
	azo, err := stageCoeff(d.Azo, "azo", lvol, lrad, d.MN, stellSym)
	if err != nil {
		return nil, err
	}

	return &Volume{
		LVol:          lvol,
		Lrad:          lrad,
		MN:            d.MN,
		Im:            append([]int(nil), d.Im...),
		In:            append([]int(nil), d.In...),
		Nfp:           d.Nfp,
		StellSym:      stellSym,
		CoordSingular: d.Igeometry >= 2 && lvol == 1,
		Rpol:          d.Rpol,
		Rtor:          d.Rtor,
		Ate:           ate,
		Ato:           ato,
		Aze:           aze,
		Azo:           azo,
	}, nil
}

// stageCoeff copies one coefficient block, checking its shape against the
// declared radial order and mode count. Odd-parity blocks may be absent
// in stellarator-symmetric datasets; they stage as zeros.
func stageCoeff(all [][][]float64, name string, lvol, lrad, mn int, optional bool) ([][]float64, error) {
	if len(all) < lvol {
		if optional {
			return zeroCoeff(lrad, mn), nil
		}
		return nil, fmt.Errorf("%w: %s has %d volumes, need %d", ErrBadCoefficients, name, len(all), lvol)
	}
	src := all[lvol-1]
	if len(src) == 0 && optional {
		return zeroCoeff(lrad, mn), nil
	}
	if len(src) != lrad+1 {
		return nil, fmt.Errorf("%w: %s volume %d has %d radial rows, need %d", ErrBadCoefficients, name, lvol, len(src), lrad+1)
	}
	out := make([][]float64, lrad+1)
	for l, row := range src {
		if len(row) != mn {
			return nil, fmt.Errorf("%w: %s volume %d row %d has %d modes, need %d", ErrBadCoefficients, name, lvol, l, len(row), mn)
		}
		out[l] = append([]float64(nil), row...)
	}
	return out, nil
}

func zeroCoeff(lrad, mn int) [][]float64 {
	out := make([][]float64, lrad+1)
	for l := range out {
		out[l] = make([]float64, mn)
	}
	return out
}
