package config

// Presets are named starting points per model, tuned for typical segmented
// linear traps (voltages of order 1 V, coordinates in micrometers).
var Presets = map[string]map[string]*Config{
	"harmonic": {
		"pair": {
			Model: "harmonic", Ions: 2, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-1, 1},
			Params: ParamsConfig{Curvature: 1.0},
		},
		"chain": {
			Model: "harmonic", Ions: 5, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-4, -2, 0, 2, 4},
			Params: ParamsConfig{Curvature: 1.0},
		},
		"stiff": {
			Model: "harmonic", Ions: 2, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-0.5, 0.5},
			Params: ParamsConfig{Curvature: 10.0},
		},
	},
	"quartic": {
		"pair": {
			Model: "quartic", Ions: 2, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-1, 1},
			Params: ParamsConfig{Curvature: 1.0, Quartic: 0.5},
		},
		"flat": {
			Model: "quartic", Ions: 4, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-3, -1, 1, 3},
			Params: ParamsConfig{Curvature: 0.1, Quartic: 2.0},
		},
	},
	"doublewell": {
		"split": {
			Model: "doublewell", Ions: 2, MassAMU: 40.078, Unit: "[um]",
			Guess:  []float64{-1.2, 1.2},
			Params: ParamsConfig{Barrier: 1.0, Confining: 2.0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if the model or
// preset does not exist. Zero-valued fields fall back to defaults at use.
func GetPreset(model, name string) *Config {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	preset, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	cfg.Guess = append([]float64(nil), preset.Guess...)
	if cfg.Spline.Degree == 0 {
		cfg.Spline = DefaultConfig().Spline
	}
	if cfg.Solver.Method == "" {
		cfg.Solver = DefaultConfig().Solver
	}
	if cfg.Symmetric.Step == 0 {
		cfg.Symmetric = DefaultConfig().Symmetric
	}
	return &cfg
}

// ListPresets returns the preset names for a model, or nil if unknown.
func ListPresets(model string) []string {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
