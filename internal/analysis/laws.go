package analysis

import (
	"math"

	"chemsim/internal/chem"
	"chemsim/internal/ode"
)

// LawSeries evaluates a conservation law at every stored state. The
// law sees only the leading species block, so trailing driver
// variables are ignored.
func LawSeries(res *ode.Result, law chem.ConservationLaw) []float64 {
	n := len(law.Coeffs)
	out := make([]float64, len(res.States))
	for i, s := range res.States {
		out[i] = law.Apply(s[:n])
	}
	return out
}

// LawDrift returns the maximum relative deviation of a conservation
// law from its initial value over a trajectory.
func LawDrift(res *ode.Result, law chem.ConservationLaw) float64 {
	series := LawSeries(res, law)
	if len(series) == 0 {
		return 0
	}
	first := series[0]
	worst := 0.0
	for _, v := range series {
		d := math.Abs(v - first)
		if first != 0 {
			d /= math.Abs(first)
		}
		worst = math.Max(worst, d)
	}
	return worst
}
