package config

// Presets are ready-made scenarios for the CLI and the live view.
var Presets = map[string]*Config{
	"flat": {
		StepSize:       0.01,
		ParameterRange: 10.0,
		Tolerance:      DefaultTolerance,
		MinDt:          DefaultMinDt,
		MaxDt:          DefaultMaxDt,
		Velocity:       [4]float64{1, 0.2, 0, 0},
	},
	"dense-core": {
		Density:        [4]float64{1e54, 1e52, 1e52, 1e52},
		StepSize:       0.005,
		ParameterRange: 5.0,
		Tolerance:      DefaultTolerance,
		MinDt:          DefaultMinDt,
		MaxDt:          DefaultMaxDt,
		Velocity:       [4]float64{1, 0.1, 0, 0},
	},
	"vortex": {
		Density: [4]float64{1e50, 1e50, 1e50, 1e50},
		Flow: [4][4]float64{
			{0, 1e6, 0, 0},
			{0, 0, 1e6, 0},
			{0, -1e6, 0, 1e6},
			{1e6, 0, 0, 0},
		},
		StepSize:       0.005,
		ParameterRange: 5.0,
		Tolerance:      DefaultTolerance,
		MinDt:          DefaultMinDt,
		MaxDt:          DefaultMaxDt,
		Velocity:       [4]float64{1, 0, 0.3, 0},
	},
}

// GetPreset returns the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
