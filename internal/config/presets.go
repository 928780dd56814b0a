package config

import "sort"

// Built-in scenarios. "nobr-ramp" is the flagship case with a known
// closed-form solution used by the verify command.
var Presets = map[string]*Config{
	"nobr-ramp": {
		Name:      "nobr-ramp",
		Reactions: []string{"NOBr -> NO + Br; eyring(84e3, 10)"},
		Initial:   map[string]float64{"NOBr": 0.7},
		Temperature: TemperatureConfig{
			Mode:  "ramp",
			T0:    290.0,
			Slope: 1.0,
		},
		Solver: SolverConfig{
			Integrator: "rk45",
			Dt:         DefaultDt,
			Duration:   20.0,
			Tolerance:  1e-10,
			Adaptive:   true,
		},
	},
	"nobr-isothermal": {
		Name:      "nobr-isothermal",
		Reactions: []string{"NOBr -> NO + Br; eyring(84e3, 10)"},
		Initial:   map[string]float64{"NOBr": 0.7},
		Temperature: TemperatureConfig{
			Mode: "const",
			T0:   300.0,
		},
		Solver: SolverConfig{
			Integrator: "rk45",
			Dt:         DefaultDt,
			Duration:   20.0,
			Tolerance:  1e-10,
			Adaptive:   true,
		},
	},
	"equilibrium": {
		Name: "equilibrium",
		Reactions: []string{
			"A -> B; 0.3",
			"B -> A; 0.1",
		},
		Initial: map[string]float64{"A": 1.0, "B": 0.0},
		Temperature: TemperatureConfig{
			Mode: "const",
			T0:   DefaultT0,
		},
		Solver: SolverConfig{
			Integrator: "rk4",
			Dt:         0.01,
			Duration:   40.0,
			Tolerance:  DefaultTolerance,
			Adaptive:   false,
		},
	},
	"autoprotolysis": {
		Name: "autoprotolysis",
		Reactions: []string{
			"H2O -> H+ + OH-; 2.4e-5",
			"H+ + OH- -> H2O; 1.4e11",
		},
		Initial: map[string]float64{
			"H2O": 55.4, "H+": 1e-7, "OH-": 1e-7,
		},
		Temperature: TemperatureConfig{
			Mode: "const",
			T0:   DefaultT0,
		},
		Solver: SolverConfig{
			Integrator: "ros2",
			Dt:         1e-9,
			Duration:   1e-4,
			Tolerance:  1e-10,
			Adaptive:   true,
		},
	},
	"oregonator-stiff": {
		Name: "oregonator-stiff",
		Reactions: []string{
			"A + Y -> X; 1.28",
			"X + Y -> P; 2.4e6",
			"A + X -> 2 X + Z; 33.6",
			"2 X -> Q; 3e3",
			"Z -> Y; 1.0",
		},
		Initial: map[string]float64{
			"A": 0.06, "X": 2e-7, "Y": 1e-6, "Z": 1e-7,
			"P": 0, "Q": 0,
		},
		Temperature: TemperatureConfig{
			Mode: "const",
			T0:   DefaultT0,
		},
		Solver: SolverConfig{
			Integrator: "ros2",
			Dt:         1e-4,
			Duration:   50.0,
			Tolerance:  1e-6,
			Adaptive:   true,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
