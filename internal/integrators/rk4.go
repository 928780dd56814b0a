package integrators

import "chemsim/internal/ode"

// RK4 is the classical fourth-order Runge-Kutta method with a fixed
// step. It is the default for non-stiff systems when adaptive stepping
// is disabled.
type RK4 struct {
	scratch ode.State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(sys ode.System, x ode.State, t, dt float64) ode.State {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make(ode.State, n)
	}
	tmp := r.scratch

	k1 := sys.Derive(x, t)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + 0.5*dt*k1[i]
	}
	k2 := sys.Derive(tmp, t+0.5*dt)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + 0.5*dt*k2[i]
	}
	k3 := sys.Derive(tmp, t+0.5*dt)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*k3[i]
	}
	k4 := sys.Derive(tmp, t+dt)

	next := x.Clone()
	for i := 0; i < n; i++ {
		next[i] += dt / 6.0 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
	return next
}
