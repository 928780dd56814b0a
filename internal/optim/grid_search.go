// Package optim fits rate parameters to reference trajectories.
package optim

import (
	"context"
	"math"
)

// Objective scores one parameter assignment; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates the full grid and returns the best assignment.
// Evaluations that fail are skipped.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, objective, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}

// Refine runs repeated grid searches, shrinking each parameter range
// around the previous best point.
func Refine(ctx context.Context, params []string, lo, hi []float64, points, rounds int, objective Objective) (map[string]float64, float64, error) {
	var best map[string]float64
	bestVal := math.Inf(1)

	for round := 0; round < rounds; round++ {
		ranges := make([][]float64, len(params))
		for i := range params {
			ranges[i] = linspace(lo[i], hi[i], points)
		}

		found, val, err := NewGridSearch(params, ranges).Search(ctx, objective)
		if err != nil {
			return nil, 0, err
		}
		if found == nil {
			break
		}
		if val < bestVal {
			bestVal = val
			best = found
		}

		// Zoom in around the winner.
		for i, name := range params {
			span := (hi[i] - lo[i]) / float64(points-1)
			lo[i] = best[name] - span
			hi[i] = best[name] + span
		}
	}
	return best, bestVal, nil
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
