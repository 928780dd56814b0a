package scenario

import (
	"context"
	"testing"

	"chemsim/internal/config"
)

func TestSweepConversionRisesWithTemperature(t *testing.T) {
	base := config.GetPreset("nobr-isothermal").Clone()
	base.Solver.Duration = 5.0

	sweep, err := NewSweep(base, 290, 320, 4)
	if err != nil {
		t.Fatal(err)
	}
	points, err := sweep.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	prev := -1.0
	for _, p := range points {
		conv, ok := p.Metrics["conversion_NOBr"]
		if !ok {
			t.Fatalf("point at %g K has no conversion metric", p.T0)
		}
		if conv <= prev {
			t.Errorf("conversion at %g K is %g, not above %g", p.T0, conv, prev)
		}
		prev = conv
	}
}

func TestSweepRejectsBadRange(t *testing.T) {
	base := config.GetPreset("nobr-isothermal")
	cases := []struct {
		tMin, tMax float64
		n          int
	}{
		{300, 290, 4},
		{-10, 300, 4},
		{290, 320, 1},
	}
	for _, c := range cases {
		if _, err := NewSweep(base, c.tMin, c.tMax, c.n); err == nil {
			t.Errorf("NewSweep(%g, %g, %d) accepted", c.tMin, c.tMax, c.n)
		}
	}
}

func TestSweepPropagatesFailure(t *testing.T) {
	base := config.GetPreset("nobr-isothermal").Clone()
	base.Reactions = []string{"NOBr -> NO +"}

	sweep, err := NewSweep(base, 290, 320, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sweep.Run(context.Background()); err == nil {
		t.Error("expected sweep over a malformed reaction to fail")
	}
}
