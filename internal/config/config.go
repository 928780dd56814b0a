package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chemsim/internal/kinetics"
	"chemsim/internal/ode"
)

const (
	DefaultDt        = 0.001
	DefaultDuration  = 20.0
	DefaultTolerance = 1e-8
	DefaultT0        = 298.15
)

// Config describes one kinetics scenario: the reaction network, the
// initial mixture, the temperature program and the solver settings.
type Config struct {
	Name        string             `yaml:"name"`
	Reactions   []string           `yaml:"reactions"`
	Initial     map[string]float64 `yaml:"initial"`
	Temperature TemperatureConfig  `yaml:"temperature"`
	Solver      SolverConfig       `yaml:"solver"`
}

type TemperatureConfig struct {
	Mode  string  `yaml:"mode"` // "const" or "ramp"
	T0    float64 `yaml:"t0"`
	Slope float64 `yaml:"slope"`
}

type SolverConfig struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Tolerance  float64 `yaml:"tolerance"`
	Adaptive   bool    `yaml:"adaptive"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "custom",
		Temperature: TemperatureConfig{
			Mode: "const",
			T0:   DefaultT0,
		},
		Solver: SolverConfig{
			Integrator: "rk45",
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Tolerance:  DefaultTolerance,
			Adaptive:   true,
		},
	}
}

// Clone copies the config deeply enough that overriding one field
// never mutates a shared preset.
func (c *Config) Clone() *Config {
	out := *c
	out.Reactions = append([]string(nil), c.Reactions...)
	out.Initial = make(map[string]float64, len(c.Initial))
	for k, v := range c.Initial {
		out.Initial[k] = v
	}
	return &out
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

func (c *Config) Validate() error {
	if len(c.Reactions) == 0 {
		return fmt.Errorf("config %q: no reactions", c.Name)
	}
	if c.Temperature.T0 <= 0 {
		return fmt.Errorf("config %q: t0 must be positive, got %g", c.Name, c.Temperature.T0)
	}
	switch c.Temperature.Mode {
	case "const", "ramp":
	default:
		return fmt.Errorf("config %q: unknown temperature mode %q", c.Name, c.Temperature.Mode)
	}
	if c.Solver.Dt <= 0 {
		return fmt.Errorf("config %q: dt must be positive, got %g", c.Name, c.Solver.Dt)
	}
	if c.Solver.Duration <= 0 {
		return fmt.Errorf("config %q: duration must be positive, got %g", c.Name, c.Solver.Duration)
	}
	return nil
}

// TemperatureProgram builds the driver described by the temperature
// block.
func (c *Config) TemperatureProgram() (kinetics.TemperatureProgram, error) {
	switch c.Temperature.Mode {
	case "const", "":
		return kinetics.ConstantT{T: c.Temperature.T0}, nil
	case "ramp":
		return kinetics.RampT{T0: c.Temperature.T0, Slope: c.Temperature.Slope}, nil
	default:
		return nil, fmt.Errorf("unknown temperature mode %q", c.Temperature.Mode)
	}
}

// SolverSettings translates the solver block into an integration
// config.
func (c *Config) SolverSettings() ode.Config {
	cfg := ode.DefaultConfig()
	if c.Solver.Dt > 0 {
		cfg.Dt = c.Solver.Dt
	}
	if c.Solver.Duration > 0 {
		cfg.Duration = c.Solver.Duration
	}
	if c.Solver.Tolerance > 0 {
		cfg.Tolerance = c.Solver.Tolerance
	}
	cfg.Adaptive = c.Solver.Adaptive
	return cfg
}
