// Package scenario assembles a runnable simulation from a config:
// reaction network, rate laws, temperature program, integrator and
// diagnostics.
package scenario

import (
	"context"
	"fmt"

	"chemsim/internal/chem"
	"chemsim/internal/config"
	"chemsim/internal/kinetics"
	"chemsim/internal/metrics"
	"chemsim/internal/ode"
	"chemsim/internal/solver"
)

// kineticSystem is satisfied by both the driven and the autonomous
// formulation.
type kineticSystem interface {
	ode.System
	InitialState(conc map[string]float64) (ode.State, error)
	Rates() []kinetics.Rate
}

type Scenario struct {
	Cfg     *config.Config
	Network *chem.ReactionSystem
	Temp    kinetics.TemperatureProgram
	System  kineticSystem
	Integ   ode.Integrator
	Solver  *solver.Solver
	X0      ode.State
	ramped  bool
}

// Build validates the config and wires every component it describes.
func Build(cfg *config.Config) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	network, err := chem.FromStrings(cfg.Reactions)
	if err != nil {
		return nil, fmt.Errorf("parse reactions: %w", err)
	}

	temp, err := cfg.TemperatureProgram()
	if err != nil {
		return nil, err
	}

	var sys kineticSystem
	ramped := false
	if ramp, ok := temp.(kinetics.RampT); ok && ramp.Slope != 0 {
		sys, err = kinetics.NewAutonomous(network, ramp)
		ramped = true
	} else {
		sys, err = kinetics.NewODESystem(network, temp)
	}
	if err != nil {
		return nil, fmt.Errorf("build rate laws: %w", err)
	}

	x0, err := sys.InitialState(cfg.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial mixture: %w", err)
	}

	integ, err := NewRegistry().GetIntegrator(cfg.Solver.Integrator)
	if err != nil {
		return nil, err
	}

	sc := &Scenario{
		Cfg:     cfg,
		Network: network,
		Temp:    temp,
		System:  sys,
		Integ:   integ,
		Solver:  solver.New(sys, integ),
		X0:      x0,
		ramped:  ramped,
	}
	for _, m := range sc.defaultMetrics() {
		sc.Solver.AddMetric(m)
	}
	return sc, nil
}

func (s *Scenario) defaultMetrics() []solver.Metric {
	n := len(s.Network.Species)
	ms := []solver.Metric{
		metrics.NewPositivity(n, 1e-9),
	}
	for i, law := range s.Network.ConservationLaws() {
		ms = append(ms, metrics.NewMassBalance(fmt.Sprintf("mass_balance_%d", i), law))
	}
	for _, name := range s.Network.Species {
		idx, ok := s.Network.Index(name)
		if ok && s.Cfg.Initial[name] > 0 {
			ms = append(ms, metrics.NewConversion(name, idx))
		}
	}
	return ms
}

// Run integrates the scenario to completion.
func (s *Scenario) Run(ctx context.Context) (*ode.Result, error) {
	return s.Solver.Run(ctx, s.X0, s.Cfg.SolverSettings())
}

// Ramped reports whether the state carries temperature as a trailing
// component.
func (s *Scenario) Ramped() bool { return s.ramped }

// Concentrations strips any trailing driver variable from a state.
func (s *Scenario) Concentrations(x ode.State) ode.State {
	if s.ramped {
		return x[:len(s.Network.Species)]
	}
	return x
}

// TemperatureAt reads the temperature a state was computed at.
func (s *Scenario) TemperatureAt(x ode.State, t float64) float64 {
	if s.ramped {
		return x[len(x)-1]
	}
	return s.Temp.At(t)
}
