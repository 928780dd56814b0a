package integrators

import (
	"fmt"
	"math"

	"chemsim/internal/linalg"
	"chemsim/internal/ode"
)

// ros2Gamma makes the two-stage scheme L-stable, which is what lets it
// take large steps across the fast transients of stiff rate equations.
var ros2Gamma = 1.0 + 1.0/math.Sqrt2

const (
	ros2MaxTries = 1000
	jacEpsFloor  = 1e-8
)

// Rosenbrock is a two-stage linearly implicit method (ROS2) for stiff
// systems. Each step factorizes I - gamma*dt*J once and reuses the
// factorization for both stage solves. The Jacobian is approximated by
// forward differences, which keeps the method at order two regardless
// of how rough the approximation is.
type Rosenbrock struct{}

func NewRosenbrock() *Rosenbrock { return &Rosenbrock{} }

func (r *Rosenbrock) Name() string { return "ros2" }

func (r *Rosenbrock) Step(sys ode.System, x ode.State, t, dt float64) ode.State {
	next, err := r.attempt(sys, x, t, dt)
	if err != nil {
		return x.Clone()
	}
	return next
}

// StepAdaptive covers the requested interval, controlling each substep
// by comparing a full step against two half steps. The doubled
// solution is the one carried forward.
func (r *Rosenbrock) StepAdaptive(sys ode.System, x ode.State, t, dt, tol float64) (ode.State, float64, error) {
	if tol <= 0 {
		tol = 1e-8
	}
	cur := x
	tEnd := t + dt
	h := dt
	for try := 0; try < ros2MaxTries; try++ {
		if h > tEnd-t {
			h = tEnd - t
		}
		full, err := r.attempt(sys, cur, t, h)
		if err != nil {
			h *= 0.5
			continue
		}
		half, err := r.attempt(sys, cur, t, 0.5*h)
		if err == nil {
			half, err = r.attempt(sys, half, t+0.5*h, 0.5*h)
		}
		if err != nil {
			h *= 0.5
			continue
		}

		errEst := half.Sub(full)
		errRatio := errorRatio(cur, half, errEst, tol)
		if errRatio <= 1.0 {
			cur = half
			t += h
			scale := rk45MaxScale
			if errRatio > 0 {
				// Local error is O(dt^3) for an order two pair.
				scale = rk45Safety * math.Pow(errRatio, -1.0/3.0)
			}
			h *= clamp(scale, rk45MinScale, rk45MaxScale)
			if t >= tEnd {
				return cur, h, nil
			}
			continue
		}
		h *= clamp(rk45Safety*math.Pow(errRatio, -1.0/3.0), rk45MinScale, 1.0)
		if h <= 0 || math.IsNaN(h) {
			return nil, 0, fmt.Errorf("ros2: %w at t=%g", ode.ErrStepTooSmall, t)
		}
	}
	return nil, 0, fmt.Errorf("ros2: %w: no acceptable step after %d attempts at t=%g",
		ode.ErrSolverFailure, ros2MaxTries, t)
}

func (r *Rosenbrock) attempt(sys ode.System, x ode.State, t, dt float64) (ode.State, error) {
	n := len(x)
	f0 := sys.Derive(x, t)

	jac := numericalJacobian(sys, x, t, f0)

	// W = I - gamma*dt*J
	w := linalg.New(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -ros2Gamma * dt * jac.At(i, j)
			if i == j {
				v += 1.0
			}
			w.Set(i, j, v)
		}
	}
	lu, err := linalg.Factorize(w)
	if err != nil {
		return nil, fmt.Errorf("ros2: factorize W: %w", err)
	}

	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		rhs[i] = dt * f0[i]
	}
	k1 := lu.Solve(rhs)

	stage := x.Clone()
	for i := 0; i < n; i++ {
		stage[i] += k1[i]
	}
	f1 := sys.Derive(stage, t+dt)
	for i := 0; i < n; i++ {
		rhs[i] = dt*f1[i] - 2.0*k1[i]
	}
	k2 := lu.Solve(rhs)

	next := x.Clone()
	for i := 0; i < n; i++ {
		next[i] += 1.5*k1[i] + 0.5*k2[i]
	}
	return next, nil
}

// numericalJacobian builds a forward-difference Jacobian of the
// derivative field at (x, t), reusing the already computed f(x, t).
func numericalJacobian(sys ode.System, x ode.State, t float64, f0 ode.State) *linalg.Matrix {
	n := len(x)
	jac := linalg.New(n, n)
	pert := x.Clone()
	sqrtEps := math.Sqrt(2.2e-16)
	for j := 0; j < n; j++ {
		h := sqrtEps * math.Max(math.Abs(x[j]), jacEpsFloor)
		pert[j] = x[j] + h
		fj := sys.Derive(pert, t)
		for i := 0; i < n; i++ {
			jac.Set(i, j, (fj[i]-f0[i])/h)
		}
		pert[j] = x[j]
	}
	return jac
}
