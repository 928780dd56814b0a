// Package solver drives an integrator over a reaction system and
// collects the trajectory plus any registered metrics.
package solver

import (
	"context"
	"fmt"
	"math"

	"chemsim/internal/ode"
)

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Reset()
	Observe(x ode.State, t float64)
	Value() float64
}

// Observer is called after every accepted step.
type Observer interface {
	OnStep(x ode.State, t float64)
}

type Solver struct {
	sys        *countingSystem
	integrator ode.Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys ode.System, integrator ode.Integrator) *Solver {
	return &Solver{
		sys:        &countingSystem{inner: sys},
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) Run(ctx context.Context, x0 ode.State, cfg ode.Config) (*ode.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.Dim() {
		return nil, fmt.Errorf("%w: state has %d components, system has %d",
			ode.ErrDimensionMismatch, len(x0), s.sys.Dim())
	}

	est := int(cfg.Duration/cfg.Dt) + 1
	result := &ode.Result{
		States:  make([]ode.State, 0, est),
		Times:   make([]float64, 0, est),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.sys.evals = 0

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	for _, m := range s.metrics {
		m.Observe(x, t)
	}

	step := 0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			result.Evals = s.sys.evals
			return result, ctx.Err()
		default:
		}

		if t+dt > cfg.Duration {
			dt = cfg.Duration - t
		}

		var newX ode.State
		var dtNext float64
		var stepErr error

		if cfg.Adaptive {
			newX, dtNext, stepErr = s.adaptiveStep(x, t, dt, cfg)
		} else {
			newX = s.integrator.Step(s.sys, x, t, dt)
			dtNext = dt
		}

		if stepErr != nil {
			result.Errors = append(result.Errors, stepErr)
			break
		}

		if cfg.ValidateState && !newX.IsValid() {
			result.Errors = append(result.Errors,
				ode.StepError{Time: t, Step: step, Message: "invalid state (NaN/Inf)"})
			break
		}

		t += dt
		x = newX
		dt = clampDt(dtNext, cfg)
		step++
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}
	}

	result.Evals = s.sys.evals
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback integrates without storing the trajectory; the
// callback returns false to stop early. Used by the live view.
func (s *Solver) RunWithCallback(ctx context.Context, x0 ode.State, cfg ode.Config, callback func(x ode.State, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		if t+dt > cfg.Duration {
			dt = cfg.Duration - t
		}

		var err error
		var dtNext float64
		if cfg.Adaptive {
			x, dtNext, err = s.adaptiveStep(x, t, dt, cfg)
			if err != nil {
				return err
			}
		} else {
			x = s.integrator.Step(s.sys, x, t, dt)
			dtNext = dt
		}
		t += dt
		dt = clampDt(dtNext, cfg)

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ode.ErrInvalidState, t)
		}
	}
	callback(x, t)
	return nil
}

func (s *Solver) validateConfig(cfg ode.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Solver) adaptiveStep(x ode.State, t, dt float64, cfg ode.Config) (ode.State, float64, error) {
	if adaptive, ok := s.integrator.(ode.AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
	}
	return s.doubledStep(x, t, dt, cfg)
}

// doubledStep is the fallback for integrators without an embedded
// error estimate. It covers exactly [t, t+dt] by step doubling,
// halving rejected substeps, so the caller's t += dt stays aligned
// with the returned state.
func (s *Solver) doubledStep(x ode.State, t, dt float64, cfg ode.Config) (ode.State, float64, error) {
	cur := x.Clone()
	now := t
	tEnd := t + dt
	h := dt

	for now < tEnd {
		if now+h > tEnd {
			h = tEnd - now
		}

		x1 := s.integrator.Step(s.sys, cur, now, h)
		xHalf := s.integrator.Step(s.sys, cur, now, h/2)
		x2 := s.integrator.Step(s.sys, xHalf, now+h/2, h/2)

		errNorm := x1.Sub(x2).Norm()
		if errNorm > cfg.Tolerance && h > cfg.MinDt {
			h = math.Max(h/2, cfg.MinDt)
			continue
		}

		cur = x2
		now += h

		if errNorm < cfg.Tolerance/10 {
			h *= 2
			if cfg.MaxDt > 0 && h > cfg.MaxDt {
				h = cfg.MaxDt
			}
		}
	}
	return cur, h, nil
}

func clampDt(dt float64, cfg ode.Config) float64 {
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}
	if cfg.MinDt > 0 && dt < cfg.MinDt {
		dt = cfg.MinDt
	}
	return dt
}

// countingSystem tracks derivative evaluations for the run report.
type countingSystem struct {
	inner ode.System
	evals int
}

func (c *countingSystem) Dim() int { return c.inner.Dim() }

func (c *countingSystem) Derive(x ode.State, t float64) ode.State {
	c.evals++
	return c.inner.Derive(x, t)
}
