package scenario

import (
	"context"
	"fmt"
	"sync"

	"chemsim/internal/config"
)

// SweepPoint is the outcome of one run in a temperature sweep.
type SweepPoint struct {
	T0      float64
	Metrics map[string]float64
	Err     error
}

// Sweep runs the same reaction network at a range of starting
// temperatures, one goroutine per point.
type Sweep struct {
	base  *config.Config
	temps []float64
}

func NewSweep(base *config.Config, tMin, tMax float64, n int) (*Sweep, error) {
	if n < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", n)
	}
	if tMin <= 0 || tMax <= tMin {
		return nil, fmt.Errorf("bad temperature range [%g, %g]", tMin, tMax)
	}
	temps := make([]float64, n)
	step := (tMax - tMin) / float64(n-1)
	for i := range temps {
		temps[i] = tMin + float64(i)*step
	}
	return &Sweep{base: base.Clone(), temps: temps}, nil
}

func (s *Sweep) Run(ctx context.Context) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(s.temps))

	var wg sync.WaitGroup
	for i, t0 := range s.temps {
		wg.Add(1)
		go func(idx int, t0 float64) {
			defer wg.Done()

			cfg := s.base.Clone()
			cfg.Temperature.T0 = t0
			points[idx].T0 = t0
			points[idx].Err = s.runOne(ctx, cfg, &points[idx])
		}(i, t0)
	}
	wg.Wait()

	for _, p := range points {
		if p.Err != nil {
			return points, fmt.Errorf("sweep at %g K: %w", p.T0, p.Err)
		}
	}
	return points, nil
}

func (s *Sweep) runOne(ctx context.Context, cfg *config.Config, out *SweepPoint) error {
	sc, err := Build(cfg)
	if err != nil {
		return err
	}
	res, err := sc.Run(ctx)
	if err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		return res.Errors[0]
	}
	out.Metrics = res.Metrics
	return nil
}
