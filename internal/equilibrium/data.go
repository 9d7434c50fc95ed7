// Package equilibrium stages externally computed toroidal-equilibrium
// solutions for field-line tracing.
//
// A [Data] value is the solver's output: format version, mode tables,
// geometry flags, and per-volume vector-potential coefficients. The
// adapter validates it once and stages one sub-volume into an immutable
// [Volume], which then evaluates sqrt(g)·B and its derivatives from the
// spectral representation. Validation failures are configuration errors
// raised at construction, never numerical faults.
package equilibrium

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Data mirrors the equilibrium solver's output object. Coefficient arrays
// are indexed [volume][radial order][mode]; the mode tables Im/In list the
// poloidal and toroidal mode numbers (In already includes the Nfp factor).
type Data struct {
	Version   float64 `yaml:"version"`
	Mvol      int     `yaml:"mvol"`
	Mpol      int     `yaml:"mpol"`
	Ntor      int     `yaml:"ntor"`
	Igeometry int     `yaml:"igeometry"`
	Istellsym int     `yaml:"istellsym"`
	Nfp       int     `yaml:"nfp"`
	MN        int     `yaml:"mn"`
	Im        []int   `yaml:"im"`
	In        []int   `yaml:"in"`
	Lrad      []int   `yaml:"lrad"`
	Rpol      float64 `yaml:"rpol"`
	Rtor      float64 `yaml:"rtor"`

	Ate [][][]float64 `yaml:"ate"`
	Ato [][][]float64 `yaml:"ato"`
	Aze [][][]float64 `yaml:"aze"`
	Azo [][][]float64 `yaml:"azo"`
}

// Load reads an equilibrium dataset from a YAML file. Missing rpol/rtor
// default to 1, matching solvers that predate those fields.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("equilibrium: read %s: %w", path, err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("equilibrium: parse %s: %w", path, err)
	}
	if d.Rpol == 0 {
		d.Rpol = 1.0
	}
	if d.Rtor == 0 {
		d.Rtor = 1.0
	}
	return &d, nil
}
