package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIons      = 2
	DefaultMassAMU   = 40.078 // Ca-40
	DefaultUnit      = "[um]"
	DefaultDegree    = 5
	DefaultSmoothing = 1e-6
	DefaultCurvature = 1.0
)

type Config struct {
	Model     string          `yaml:"model"`
	Ions      int             `yaml:"ions"`
	MassAMU   float64         `yaml:"mass_amu"`
	Unit      string          `yaml:"unit"`
	Guess     []float64       `yaml:"guess"`
	Spline    SplineConfig    `yaml:"spline"`
	Solver    SolverConfig    `yaml:"solver"`
	Symmetric SymmetricConfig `yaml:"symmetric"`
	Params    ParamsConfig    `yaml:"params"`
}

type SplineConfig struct {
	Degree    int     `yaml:"degree"`
	Smoothing float64 `yaml:"smoothing"`
}

type SolverConfig struct {
	Method        string  `yaml:"method"`
	Tol           float64 `yaml:"tol"`
	MaxIter       int     `yaml:"max_iter"`
	MinSeparation float64 `yaml:"min_separation"`
}

type SymmetricConfig struct {
	Start   float64 `yaml:"start"`
	Step    float64 `yaml:"step"`
	MaxScan int     `yaml:"max_scan"`
}

// ParamsConfig holds analytic model parameters; only the ones the chosen
// model understands are applied.
type ParamsConfig struct {
	Curvature float64 `yaml:"curvature"`
	Quartic   float64 `yaml:"quartic"`
	Barrier   float64 `yaml:"barrier"`
	Confining float64 `yaml:"confining"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "harmonic",
		Ions:    DefaultIons,
		MassAMU: DefaultMassAMU,
		Unit:    DefaultUnit,
		Guess:   []float64{-1, 1},
		Spline: SplineConfig{
			Degree:    DefaultDegree,
			Smoothing: DefaultSmoothing,
		},
		Solver: SolverConfig{
			Method:  "newton",
			Tol:     1e-10,
			MaxIter: 200,
		},
		Symmetric: SymmetricConfig{
			Start:   1e-3,
			Step:    0.02,
			MaxScan: 10000,
		},
		Params: ParamsConfig{
			Curvature: DefaultCurvature,
		},
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

// ModelParams returns the analytic model parameters relevant to the
// configured model, keyed the way the registry expects.
func (c *Config) ModelParams() map[string]float64 {
	switch c.Model {
	case "quartic":
		return map[string]float64{"curvature": c.Params.Curvature, "quartic": c.Params.Quartic}
	case "doublewell":
		return map[string]float64{"barrier": c.Params.Barrier, "confining": c.Params.Confining}
	default:
		return map[string]float64{"curvature": c.Params.Curvature}
	}
}
