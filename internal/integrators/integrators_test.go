package integrators

import (
	"math"
	"testing"

	"chemsim/internal/ode"
)

// fieldSystem wraps a derivative function for test use.
type fieldSystem struct {
	dim int
	f   func(x ode.State, t float64) ode.State
}

func (s fieldSystem) Dim() int                                { return s.dim }
func (s fieldSystem) Derive(x ode.State, t float64) ode.State { return s.f(x, t) }

func decaySystem(k float64) fieldSystem {
	return fieldSystem{dim: 1, f: func(x ode.State, t float64) ode.State {
		return ode.State{-k * x[0]}
	}}
}

// oscillator is x'' = -x written as a first order pair.
var oscillator = fieldSystem{dim: 2, f: func(x ode.State, t float64) ode.State {
	return ode.State{x[1], -x[0]}
}}

func integrateFixed(t *testing.T, ig ode.Integrator, sys ode.System, x0 ode.State, dt, duration float64) ode.State {
	t.Helper()
	x := x0.Clone()
	steps := int(math.Round(duration / dt))
	for i := 0; i < steps; i++ {
		x = ig.Step(sys, x, float64(i)*dt, dt)
	}
	return x
}

func TestEulerDecay(t *testing.T) {
	sys := decaySystem(1.0)
	x := integrateFixed(t, NewEuler(), sys, ode.State{1.0}, 1e-4, 1.0)
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-3 {
		t.Errorf("euler decay: got %g, want %g", x[0], want)
	}
}

func TestRK4Decay(t *testing.T) {
	sys := decaySystem(1.0)
	x := integrateFixed(t, NewRK4(), sys, ode.State{1.0}, 0.01, 1.0)
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-9 {
		t.Errorf("rk4 decay: got %g, want %g", x[0], want)
	}
}

// Halving the step should cut the global error by about 2^order.
func TestConvergenceOrder(t *testing.T) {
	cases := []struct {
		name  string
		ig    ode.Integrator
		order float64
	}{
		{"euler", NewEuler(), 1},
		{"rk4", NewRK4(), 4},
	}
	sys := decaySystem(1.0)
	want := math.Exp(-1.0)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coarse := integrateFixed(t, tc.ig, sys, ode.State{1.0}, 0.02, 1.0)
			fine := integrateFixed(t, tc.ig, sys, ode.State{1.0}, 0.01, 1.0)
			errCoarse := math.Abs(coarse[0] - want)
			errFine := math.Abs(fine[0] - want)
			ratio := errCoarse / errFine
			expect := math.Pow(2, tc.order)
			if ratio < expect*0.7 || ratio > expect*1.5 {
				t.Errorf("error ratio %g, want about %g", ratio, expect)
			}
		})
	}
}

func TestRK4OscillatorEnergy(t *testing.T) {
	// dt divides the period exactly so the endpoint lands on 2π.
	x := integrateFixed(t, NewRK4(), oscillator, ode.State{1.0, 0.0}, 2*math.Pi/1000, 2*math.Pi)
	if math.Abs(x[0]-1.0) > 1e-6 || math.Abs(x[1]) > 1e-6 {
		t.Errorf("one oscillator period: got %v, want [1 0]", x)
	}
	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if math.Abs(energy-0.5) > 1e-8 {
		t.Errorf("energy drifted to %g", energy)
	}
}

func TestRK45Adaptive(t *testing.T) {
	sys := decaySystem(1.0)
	ig := NewRK45()
	x := ode.State{1.0}
	tNow, dt := 0.0, 0.01
	for tNow < 1.0 {
		if tNow+dt > 1.0 {
			dt = 1.0 - tNow
		}
		next, dtNext, err := ig.StepAdaptive(sys, x, tNow, dt, 1e-10)
		if err != nil {
			t.Fatalf("StepAdaptive: %v", err)
		}
		x = next
		tNow += dt
		dt = dtNext
	}
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-8 {
		t.Errorf("rk45 adaptive decay: got %g, want %g", x[0], want)
	}
}

func TestRK45GrowsStepOnSmoothProblem(t *testing.T) {
	sys := decaySystem(0.01)
	_, dtNext, err := NewRK45().StepAdaptive(sys, ode.State{1.0}, 0, 1e-4, 1e-6)
	if err != nil {
		t.Fatalf("StepAdaptive: %v", err)
	}
	if dtNext <= 1e-4 {
		t.Errorf("expected step growth, got dt %g", dtNext)
	}
}

func TestRosenbrockStiffDecay(t *testing.T) {
	// A step 50x larger than the stability limit of any explicit method
	// at this rate constant.
	sys := decaySystem(1000.0)
	ig := NewRosenbrock()
	x := ode.State{1.0}
	dt := 0.1
	for i := 0; i < 10; i++ {
		x = ig.Step(sys, x, float64(i)*dt, dt)
	}
	// Solution has fully decayed; the point is stability, not accuracy.
	if math.Abs(x[0]) > 1e-3 {
		t.Errorf("stiff decay did not damp: %g", x[0])
	}
	if math.IsNaN(x[0]) || math.IsInf(x[0], 0) {
		t.Fatalf("stiff decay blew up: %g", x[0])
	}
}

func TestRosenbrockAccuracy(t *testing.T) {
	sys := decaySystem(1.0)
	x := integrateFixed(t, NewRosenbrock(), sys, ode.State{1.0}, 0.001, 1.0)
	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-5 {
		t.Errorf("ros2 decay: got %g, want %g", x[0], want)
	}
}

func TestRosenbrockAdaptiveFastSlow(t *testing.T) {
	// One fast and one slow mode; the fast transient should not limit
	// the step once it has passed.
	sys := fieldSystem{dim: 2, f: func(x ode.State, t float64) ode.State {
		return ode.State{-1000.0 * x[0], -0.5 * x[1]}
	}}
	ig := NewRosenbrock()
	x := ode.State{1.0, 1.0}
	tNow, dt := 0.0, 1e-4
	steps := 0
	for tNow < 2.0 {
		if tNow+dt > 2.0 {
			dt = 2.0 - tNow
		}
		next, dtNext, err := ig.StepAdaptive(sys, x, tNow, dt, 1e-8)
		if err != nil {
			t.Fatalf("StepAdaptive at t=%g: %v", tNow, err)
		}
		x = next
		tNow += dt
		dt = dtNext
		steps++
		if steps > 100000 {
			t.Fatal("step count runaway")
		}
	}
	wantSlow := math.Exp(-0.5 * 2.0)
	if math.Abs(x[1]-wantSlow) > 1e-5 {
		t.Errorf("slow mode: got %g, want %g", x[1], wantSlow)
	}
	if steps > 5000 {
		t.Errorf("took %d steps, stiffness not handled", steps)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	ig := NewRK4()
	x := ode.State{1.0, 0.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = ig.Step(oscillator, x, 0, 0.01)
	}
	_ = x
}

func BenchmarkRosenbrockStep(b *testing.B) {
	ig := NewRosenbrock()
	sys := decaySystem(100.0)
	x := ode.State{1.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ig.Step(sys, x, 0, 0.01)
	}
}
