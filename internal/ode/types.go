// Package ode defines the state-vector types and integrator contracts
// shared by the kinetics layer and the solver.
package ode

import (
	"fmt"
	"math"
)

// State is a concentration vector (plus any appended driver
// variables, such as temperature in autonomous form).
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// System is a first-order ODE right-hand side dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Integrator advances a system one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator additionally controls its own step size against
// a local error tolerance.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Config controls an integration run.
type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.001,
		Duration:      20.0,
		Tolerance:     1e-8,
		MaxDt:         0.5,
		MinDt:         1e-12,
		Adaptive:      true,
		ValidateState: true,
	}
}

// Result is a completed trajectory.
type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Evals      int
	Errors     []error
}

// At returns the series of one state component.
func (r *Result) At(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		out[k] = s[i]
	}
	return out
}

// StepError wraps a failure with integration context.
type StepError struct {
	Time    float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %s", e.Step, e.Time, e.Message)
}
