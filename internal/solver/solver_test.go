package solver

import (
	"context"
	"math"
	"testing"

	"chemsim/internal/integrators"
	"chemsim/internal/ode"
)

type decay struct{ k float64 }

func (d decay) Dim() int { return 1 }
func (d decay) Derive(x ode.State, t float64) ode.State {
	return ode.State{-d.k * x[0]}
}

func fixedConfig() ode.Config {
	cfg := ode.DefaultConfig()
	cfg.Adaptive = false
	cfg.Dt = 0.001
	cfg.Duration = 1.0
	return cfg
}

func TestRunFixedStep(t *testing.T) {
	s := New(decay{k: 1.0}, integrators.NewRK4())
	res, err := s.Run(context.Background(), ode.State{1.0}, fixedConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("step errors: %v", res.Errors)
	}

	final := res.States[len(res.States)-1][0]
	want := math.Exp(-1.0)
	if math.Abs(final-want) > 1e-9 {
		t.Errorf("final state: got %g, want %g", final, want)
	}
	if got := res.Times[len(res.Times)-1]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("final time: got %g, want 1", got)
	}
	if res.Evals == 0 {
		t.Error("evaluation count not recorded")
	}
}

func TestRunAdaptive(t *testing.T) {
	cfg := ode.DefaultConfig()
	cfg.Duration = 1.0
	cfg.Tolerance = 1e-10

	s := New(decay{k: 1.0}, integrators.NewRK45())
	res, err := s.Run(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	final := res.States[len(res.States)-1][0]
	want := math.Exp(-1.0)
	if math.Abs(final-want) > 1e-7 {
		t.Errorf("final state: got %g, want %g", final, want)
	}

	fixedSteps := int(cfg.Duration / cfg.Dt)
	if res.StepsTaken >= fixedSteps {
		t.Errorf("adaptive run took %d steps, fixed would take %d", res.StepsTaken, fixedSteps)
	}
}

// The step-doubling fallback must advance the full requested
// interval: with a coarse dt forcing rejections, every stored
// (t, x) pair still has to sit on the exact solution.
func TestRunAdaptiveFallbackKeepsTimesAligned(t *testing.T) {
	cfg := ode.DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 2.0
	cfg.Tolerance = 1e-8

	s := New(decay{k: 8.0}, integrators.NewRK4())
	res, err := s.Run(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("step errors: %v", res.Errors)
	}

	for i, tNow := range res.Times {
		want := math.Exp(-8.0 * tNow)
		got := res.States[i][0]
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("t=%.4f: got %.6e, want %.6e", tNow, got, want)
		}
	}
	if final := res.Times[len(res.Times)-1]; math.Abs(final-2.0) > 1e-9 {
		t.Errorf("final time: got %g, want 2", final)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	s := New(decay{k: 1.0}, integrators.NewRK4())
	cases := []ode.Config{
		{Dt: 0, Duration: 1},
		{Dt: 0.01, Duration: 0},
		{Dt: 0.01, Duration: 1, Adaptive: true, Tolerance: 0},
	}
	for _, cfg := range cases {
		if _, err := s.Run(context.Background(), ode.State{1.0}, cfg); err == nil {
			t.Errorf("config %+v accepted", cfg)
		}
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	s := New(decay{k: 1.0}, integrators.NewRK4())
	_, err := s.Run(context.Background(), ode.State{1.0, 2.0}, fixedConfig())
	if err == nil {
		t.Fatal("mismatched state accepted")
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(decay{k: 1.0}, integrators.NewRK4())
	_, err := s.Run(ctx, ode.State{1.0}, fixedConfig())
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type sumMetric struct{ total float64 }

func (m *sumMetric) Name() string                   { return "sum" }
func (m *sumMetric) Reset()                         { m.total = 0 }
func (m *sumMetric) Observe(x ode.State, t float64) { m.total += x[0] }
func (m *sumMetric) Value() float64                 { return m.total }

func TestMetricsCollected(t *testing.T) {
	s := New(decay{k: 1.0}, integrators.NewRK4())
	s.AddMetric(&sumMetric{})

	res, err := s.Run(context.Background(), ode.State{1.0}, fixedConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	v, ok := res.Metrics["sum"]
	if !ok {
		t.Fatal("metric missing from result")
	}
	if v <= 0 {
		t.Errorf("metric value: %g", v)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	s := New(decay{k: 1.0}, integrators.NewRK4())
	calls := 0
	err := s.RunWithCallback(context.Background(), ode.State{1.0}, fixedConfig(),
		func(x ode.State, tNow float64) bool {
			calls++
			return calls < 10
		})
	if err != nil {
		t.Fatalf("RunWithCallback: %v", err)
	}
	if calls != 10 {
		t.Errorf("callback ran %d times, want 10", calls)
	}
}

func TestInvalidStateStopsRun(t *testing.T) {
	blowup := fieldFunc(func(x ode.State, t float64) ode.State {
		return ode.State{math.NaN()}
	})
	s := New(blowup, integrators.NewEuler())
	cfg := fixedConfig()

	res, err := s.Run(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("NaN state not reported")
	}
	if res.StepsTaken > 1 {
		t.Errorf("run continued for %d steps after NaN", res.StepsTaken)
	}
}

type fieldFunc func(x ode.State, t float64) ode.State

func (f fieldFunc) Dim() int                                { return 1 }
func (f fieldFunc) Derive(x ode.State, t float64) ode.State { return f(x, t) }
