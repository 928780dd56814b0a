package integrators

import "chemsim/internal/ode"

// Euler is the explicit first-order method. It is mostly useful as a
// baseline in convergence tests and benchmarks.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys ode.System, x ode.State, t, dt float64) ode.State {
	dx := sys.Derive(x, t)
	next := x.Clone()
	for i := range next {
		next[i] += dt * dx[i]
	}
	return next
}
