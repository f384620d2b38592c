package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/tensor"
)

const (
	DefaultStepSize       = 0.01
	DefaultParameterRange = 10.0
	DefaultTolerance      = 1e-6
	DefaultMinDt          = 1e-8
	DefaultMaxDt          = 0.1
)

// Config describes one curvature/geodesic scenario: the metric inputs
// and the integration parameters.
type Config struct {
	Density        [4]float64    `yaml:"density"`
	Flow           [4][4]float64 `yaml:"flow"`
	StepSize       float64       `yaml:"step_size"`
	ParameterRange float64       `yaml:"parameter_range"`
	Adaptive       bool          `yaml:"adaptive"`
	Tolerance      float64       `yaml:"tolerance"`
	MinDt          float64       `yaml:"min_dt"`
	MaxDt          float64       `yaml:"max_dt"`
	Start          StartConfig   `yaml:"start"`
	Velocity       [4]float64    `yaml:"velocity"`
	// SingularityThreshold overrides the detection threshold when
	// positive; zero keeps the built-in default.
	SingularityThreshold float64 `yaml:"singularity_threshold,omitempty"`
}

// StartConfig is the initial event of a geodesic solve.
type StartConfig struct {
	T float64 `yaml:"t"`
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func DefaultConfig() *Config {
	return &Config{
		StepSize:       DefaultStepSize,
		ParameterRange: DefaultParameterRange,
		Tolerance:      DefaultTolerance,
		MinDt:          DefaultMinDt,
		MaxDt:          DefaultMaxDt,
		Velocity:       [4]float64{1, 0, 0, 0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// FlowVectors converts the yaml flow matrix into metric-update form.
func (c *Config) FlowVectors() [4]tensor.Vec4 {
	var f [4]tensor.Vec4
	for i := 0; i < 4; i++ {
		f[i] = tensor.Vec4(c.Flow[i])
	}
	return f
}

// StartPoint returns the configured initial event.
func (c *Config) StartPoint() geometry.GeodesicPoint {
	return geometry.GeodesicPoint{
		T:       c.Start.T,
		Spatial: [3]float64{c.Start.X, c.Start.Y, c.Start.Z},
	}
}
