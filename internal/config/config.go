package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldtrace/internal/equilibrium"
	"github.com/san-kum/fieldtrace/internal/field"
	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/problems"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 100.0
	DefaultK        = 0.002
	DefaultR0       = 1.0
)

type Config struct {
	Problem    string           `yaml:"problem"`
	Integrator string           `yaml:"integrator"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	Tangent    bool             `yaml:"tangent"`
	Adaptive   bool             `yaml:"adaptive"`
	Tolerance  float64          `yaml:"tolerance"`
	InitState  []float64        `yaml:"init_state"`
	Slab       SlabConfig       `yaml:"slab"`
	Field      FieldConfig      `yaml:"field"`
	Equilib    EquilibriumRef   `yaml:"equilibrium"`
}

type SlabConfig struct {
	K float64 `yaml:"k"`
}

type FieldConfig struct {
	R0     float64    `yaml:"r0"`
	Z0     float64    `yaml:"z0"`
	Nfp    int        `yaml:"nfp"`
	B      [3]float64 `yaml:"b"`      // uniform
	Moment [3]float64 `yaml:"moment"` // dipole
	Radius float64    `yaml:"radius"` // loop
	Amps   float64    `yaml:"amps"`   // loop
	Center [3]float64 `yaml:"center"` // loop
}

type EquilibriumRef struct {
	File   string `yaml:"file"`
	Volume int    `yaml:"volume"`
}

func Default() *Config {
	return &Config{
		Problem:    "slab",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Tolerance:  1e-8,
		InitState:  []float64{0.2, 0},
		Slab:       SlabConfig{K: DefaultK},
		// The dipole moment is tilted off the z-axis and the loop sits
		// off-axis and below the z=0 plane: an axisymmetric source has
		// B^φ = 0 everywhere, which no field line parametrized by φ can
		// cross.
		Field: FieldConfig{
			R0:     DefaultR0,
			Nfp:    1,
			B:      [3]float64{0, 1, 0},
			Moment: [3]float64{0.3, 0.9, 0.4},
			Radius: 1.0,
			Amps:   1.0,
			Center: [3]float64{0, 0.35, -0.2},
		},
		Equilib: EquilibriumRef{Volume: 1},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildProblem constructs the configured problem. Equilibrium problems
// load and validate their dataset here, so configuration errors surface
// before any tracing starts.
func (c *Config) BuildProblem() (flow.Problem, error) {
	switch c.Problem {
	case "slab":
		s := problems.NewSlab()
		s.SetK(c.Slab.K)
		return s, nil
	case "uniform":
		return problems.NewFieldLine(&field.Uniform{B: c.Field.B}, c.Field.R0, c.Field.Z0, c.Field.Nfp), nil
	case "dipole":
		return problems.NewFieldLine(&field.Dipole{Moment: c.Field.Moment}, c.Field.R0, c.Field.Z0, c.Field.Nfp), nil
	case "loop":
		l := field.NewLoop(c.Field.Radius, c.Field.Amps)
		l.Center = c.Field.Center
		return problems.NewFieldLine(l, c.Field.R0, c.Field.Z0, c.Field.Nfp), nil
	case "spec":
		if c.Equilib.File == "" {
			return nil, fmt.Errorf("config: problem %q needs equilibrium.file", c.Problem)
		}
		d, err := equilibrium.Load(c.Equilib.File)
		if err != nil {
			return nil, err
		}
		return problems.NewSpecVolume(d, c.Equilib.Volume)
	default:
		return nil, fmt.Errorf("config: unknown problem %q", c.Problem)
	}
}
