package metrics

import (
	"math"
	"testing"

	"chemsim/internal/chem"
	"chemsim/internal/ode"
)

func TestMassBalanceDrift(t *testing.T) {
	law := chem.ConservationLaw{Coeffs: []float64{1, 1}}
	m := NewMassBalance("mass_balance_0", law)

	m.Observe(ode.State{0.7, 0.0}, 0)
	m.Observe(ode.State{0.5, 0.2}, 1)
	if m.Value() != 0 {
		t.Errorf("exact conservation should give zero drift, got %g", m.Value())
	}

	m.Observe(ode.State{0.5, 0.207}, 2)
	want := 0.007 / 0.7
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("drift: got %g, want %g", m.Value(), want)
	}
}

func TestMassBalanceIgnoresTemperatureState(t *testing.T) {
	law := chem.ConservationLaw{Coeffs: []float64{1, 1}}
	m := NewMassBalance("mass_balance_0", law)

	// Trailing component is the ramped temperature, not a species.
	m.Observe(ode.State{0.7, 0.0, 290.0}, 0)
	m.Observe(ode.State{0.3, 0.4, 295.0}, 5)
	if m.Value() != 0 {
		t.Errorf("temperature drove the drift: %g", m.Value())
	}
}

func TestMassBalanceReset(t *testing.T) {
	m := NewMassBalance("m", chem.ConservationLaw{Coeffs: []float64{1}})
	m.Observe(ode.State{1.0}, 0)
	m.Observe(ode.State{0.5}, 1)
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset: %g", m.Value())
	}
}

func TestPositivity(t *testing.T) {
	p := NewPositivity(2, 1e-9)
	p.Observe(ode.State{0.5, 0.2, 300.0}, 0)
	p.Observe(ode.State{1e-12, 0.7, 301.0}, 1)
	if p.Value() != 1.0 {
		t.Errorf("tiny positive values flagged: %g", p.Value())
	}

	p.Observe(ode.State{-1e-3, 0.7, 302.0}, 2)
	want := 1.0 - 1.0/3.0
	if math.Abs(p.Value()-want) > 1e-12 {
		t.Errorf("positivity: got %g, want %g", p.Value(), want)
	}
	if p.Worst() != -1e-3 {
		t.Errorf("worst: got %g", p.Worst())
	}
}

func TestConversion(t *testing.T) {
	c := NewConversion("NOBr", 0)
	if c.Name() != "conversion_NOBr" {
		t.Errorf("name: %s", c.Name())
	}
	c.Observe(ode.State{0.7}, 0)
	c.Observe(ode.State{0.35}, 10)
	if math.Abs(c.Value()-0.5) > 1e-12 {
		t.Errorf("conversion: got %g, want 0.5", c.Value())
	}
}
