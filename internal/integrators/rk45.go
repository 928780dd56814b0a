package integrators

import (
	"fmt"
	"math"

	"chemsim/internal/ode"
)

// Dormand-Prince coefficients.
var (
	dpA = [7][6]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	}
	dpC = [7]float64{0.0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1.0, 1.0}
	dpB = [7]float64{35.0 / 384.0, 0.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0.0}
	// Difference between the 5th and the embedded 4th order weights.
	dpE = [7]float64{
		71.0 / 57600.0, 0.0, -71.0 / 16695.0, 71.0 / 1920.0,
		-17253.0 / 339200.0, 22.0 / 525.0, -1.0 / 40.0,
	}
)

const (
	rk45Safety   = 0.9
	rk45MinScale = 0.2
	rk45MaxScale = 10.0
	rk45MaxTries = 1000
)

// RK45 is the Dormand-Prince 5(4) embedded pair. StepAdaptive covers
// the requested interval, substepping internally when the local error
// estimate rejects the step, and suggests a step size for the next
// call.
type RK45 struct{}

func NewRK45() *RK45 { return &RK45{} }

func (r *RK45) Name() string { return "rk45" }

// Step takes a single fixed step using the 5th order solution.
func (r *RK45) Step(sys ode.System, x ode.State, t, dt float64) ode.State {
	next, _ := r.attempt(sys, x, t, dt)
	return next
}

func (r *RK45) StepAdaptive(sys ode.System, x ode.State, t, dt, tol float64) (ode.State, float64, error) {
	if tol <= 0 {
		tol = 1e-8
	}
	cur := x
	tEnd := t + dt
	h := dt
	for try := 0; try < rk45MaxTries; try++ {
		if h > tEnd-t {
			h = tEnd - t
		}
		next, errEst := r.attempt(sys, cur, t, h)

		errRatio := errorRatio(cur, next, errEst, tol)
		if errRatio <= 1.0 {
			cur = next
			t += h
			scale := rk45MaxScale
			if errRatio > 0 {
				scale = rk45Safety * math.Pow(errRatio, -0.2)
			}
			h *= clamp(scale, rk45MinScale, rk45MaxScale)
			if t >= tEnd {
				return cur, h, nil
			}
			continue
		}

		h *= clamp(rk45Safety*math.Pow(errRatio, -0.25), rk45MinScale, 1.0)
		if h <= 0 || math.IsNaN(h) {
			return nil, 0, fmt.Errorf("rk45: %w at t=%g", ode.ErrStepTooSmall, t)
		}
	}
	return nil, 0, fmt.Errorf("rk45: %w: no acceptable step after %d attempts at t=%g",
		ode.ErrSolverFailure, rk45MaxTries, t)
}

// attempt evaluates the seven stages and returns the 5th order solution
// together with the per-component embedded error estimate.
func (r *RK45) attempt(sys ode.System, x ode.State, t, dt float64) (ode.State, ode.State) {
	n := len(x)
	var k [7]ode.State
	stage := make(ode.State, n)

	k[0] = sys.Derive(x, t)
	for s := 1; s < 7; s++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < s; j++ {
				sum += dpA[s][j] * k[j][i]
			}
			stage[i] = x[i] + dt*sum
		}
		k[s] = sys.Derive(stage, t+dpC[s]*dt)
	}

	next := x.Clone()
	errEst := make(ode.State, n)
	for i := 0; i < n; i++ {
		sum, esum := 0.0, 0.0
		for s := 0; s < 7; s++ {
			sum += dpB[s] * k[s][i]
			esum += dpE[s] * k[s][i]
		}
		next[i] += dt * sum
		errEst[i] = dt * esum
	}
	return next, errEst
}

// errorRatio is the max over components of |err| against the tolerance
// scaled by the solution magnitude.
func errorRatio(x, next, errEst ode.State, tol float64) float64 {
	ratio := 0.0
	for i := range errEst {
		scale := tol * (1.0 + math.Max(math.Abs(x[i]), math.Abs(next[i])))
		if r := math.Abs(errEst[i]) / scale; r > ratio {
			ratio = r
		}
	}
	return ratio
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
