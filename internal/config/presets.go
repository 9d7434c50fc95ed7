package config

// Presets are ready-made configurations keyed by problem and name.
var Presets = map[string]map[string]*Config{
	"slab": {
		"island": {
			Problem: "slab", Integrator: "rk4", Dt: 0.05, Duration: 500.0,
			InitState: []float64{0.5, 3.14159265},
			Slab:      SlabConfig{K: DefaultK},
		},
		"chaotic": {
			Problem: "slab", Integrator: "rk4", Dt: 0.05, Duration: 500.0,
			InitState: []float64{0.5, 3.14159265},
			Slab:      SlabConfig{K: 0.01},
		},
		"tangent": {
			Problem: "slab", Integrator: "rk4", Dt: 0.01, Duration: 100.0,
			Tangent:   true,
			InitState: []float64{0.2, 0},
			Slab:      SlabConfig{K: DefaultK},
		},
	},
	// Dipole moments carry a y-component and the loop is displaced off
	// the z-axis: with the source in the x-z plane, B^φ vanishes on the
	// φ=0 half-plane where every trace starts.
	"dipole": {
		"equatorial": {
			Problem: "dipole", Integrator: "rk45", Dt: 0.01, Duration: 50.0,
			Adaptive: true, Tolerance: 1e-8,
			InitState: []float64{1.0, 0.0},
			Field:     FieldConfig{R0: 1.0, Nfp: 1, Moment: [3]float64{0.3, 0.9, 0.4}},
		},
		"tilted": {
			Problem: "dipole", Integrator: "rk45", Dt: 0.01, Duration: 50.0,
			Adaptive: true, Tolerance: 1e-8,
			InitState: []float64{1.0, 0.2},
			Field:     FieldConfig{R0: 1.0, Nfp: 1, Moment: [3]float64{0.1, 0.6, 0.8}},
		},
	},
	"loop": {
		"inner": {
			Problem: "loop", Integrator: "rk45", Dt: 0.01, Duration: 50.0,
			Adaptive: true, Tolerance: 1e-8,
			InitState: []float64{0.5, 0.3},
			Field: FieldConfig{R0: 0.5, Nfp: 1, Radius: 1.0, Amps: 1.0,
				Center: [3]float64{0, 0.4, 0}},
		},
	},
}

// GetPreset returns the named preset, or nil if the problem or name
// is unknown.
func GetPreset(problem, preset string) *Config {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names available for a problem.
func ListPresets(problem string) []string {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
