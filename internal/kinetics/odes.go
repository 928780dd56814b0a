package kinetics

import (
	"fmt"

	"chemsim/internal/chem"
	"chemsim/internal/ode"
)

// ODESystem is the mass-action right-hand side of a reaction system
// under a temperature program: dc/dt = N * r(c, T(t)).
type ODESystem struct {
	rs    *chem.ReactionSystem
	rates []Rate
	temp  TemperatureProgram
}

// NewODESystem resolves the system's rate specs and binds a
// temperature program.
func NewODESystem(rs *chem.ReactionSystem, temp TemperatureProgram) (*ODESystem, error) {
	rates := make([]Rate, len(rs.Reactions))
	for j, rxn := range rs.Reactions {
		r, err := FromSpec(rxn.Rate)
		if err != nil {
			return nil, fmt.Errorf("kinetics: reaction %s: %w", rxn, err)
		}
		rates[j] = r
	}
	return &ODESystem{rs: rs, rates: rates, temp: temp}, nil
}

func (s *ODESystem) Dim() int { return len(s.rs.Species) }

func (s *ODESystem) System() *chem.ReactionSystem { return s.rs }

func (s *ODESystem) Rates() []Rate { return s.rates }

func (s *ODESystem) Temperature() TemperatureProgram { return s.temp }

func (s *ODESystem) Derive(x ode.State, t float64) ode.State {
	T := s.temp.At(t)
	dx := make(ode.State, len(x))
	for j, rxn := range s.rs.Reactions {
		r := MassActionRate(s.rs, j, s.rates[j], x, T)
		for name, coeff := range rxn.Reac {
			i, _ := s.rs.Index(name)
			dx[i] -= float64(coeff) * r
		}
		for name, coeff := range rxn.Prod {
			i, _ := s.rs.Index(name)
			dx[i] += float64(coeff) * r
		}
	}
	return dx
}

// InitialState builds the state vector from a concentration map;
// unlisted species start at zero.
func (s *ODESystem) InitialState(conc map[string]float64) (ode.State, error) {
	x0 := make(ode.State, s.Dim())
	for name, c := range conc {
		i, ok := s.rs.Index(name)
		if !ok {
			return nil, fmt.Errorf("kinetics: initial concentration for unknown species %q", name)
		}
		if c < 0 {
			return nil, fmt.Errorf("kinetics: negative initial concentration for %q", name)
		}
		x0[i] = c
	}
	return x0, nil
}

// Autonomous rewrites the system with the ramp temperature as an
// extra trailing state variable, removing the explicit time
// dependence. Both formulations must integrate to the same
// concentration trajectories.
type Autonomous struct {
	inner *ODESystem
	ramp  RampT
}

// NewAutonomous wraps a ramped system in autonomous form.
func NewAutonomous(rs *chem.ReactionSystem, ramp RampT) (*Autonomous, error) {
	inner, err := NewODESystem(rs, ramp)
	if err != nil {
		return nil, err
	}
	return &Autonomous{inner: inner, ramp: ramp}, nil
}

func (a *Autonomous) Dim() int { return a.inner.Dim() + 1 }

func (a *Autonomous) System() *chem.ReactionSystem { return a.inner.rs }

func (a *Autonomous) Rates() []Rate { return a.inner.rates }

func (a *Autonomous) Temperature() TemperatureProgram { return a.ramp }

func (a *Autonomous) Derive(x ode.State, t float64) ode.State {
	n := a.inner.Dim()
	T := x[n]
	dx := make(ode.State, n+1)
	for j, rxn := range a.inner.rs.Reactions {
		r := MassActionRate(a.inner.rs, j, a.inner.rates[j], x[:n], T)
		for name, coeff := range rxn.Reac {
			i, _ := a.inner.rs.Index(name)
			dx[i] -= float64(coeff) * r
		}
		for name, coeff := range rxn.Prod {
			i, _ := a.inner.rs.Index(name)
			dx[i] += float64(coeff) * r
		}
	}
	dx[n] = a.ramp.Slope
	return dx
}

// InitialState appends the starting temperature to the concentration
// vector.
func (a *Autonomous) InitialState(conc map[string]float64) (ode.State, error) {
	x0, err := a.inner.InitialState(conc)
	if err != nil {
		return nil, err
	}
	return append(x0, a.ramp.T0), nil
}

// Concentrations strips the trailing temperature variable.
func (a *Autonomous) Concentrations(x ode.State) ode.State {
	return x[:a.inner.Dim()]
}
