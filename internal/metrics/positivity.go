package metrics

import (
	"math"

	"chemsim/internal/ode"
)

// Positivity reports the fraction of samples in which every tracked
// concentration stayed above -tol. Small negative excursions are a
// normal symptom of an over-eager step size.
type Positivity struct {
	name       string
	nSpecies   int
	tol        float64
	violations int
	samples    int
	worst      float64
}

func NewPositivity(nSpecies int, tol float64) *Positivity {
	return &Positivity{name: "positivity", nSpecies: nSpecies, tol: tol}
}

func (p *Positivity) Name() string { return p.name }

func (p *Positivity) Observe(x ode.State, t float64) {
	p.samples++
	n := p.nSpecies
	if n > len(x) {
		n = len(x)
	}
	ok := true
	for _, v := range x[:n] {
		if v < -p.tol {
			ok = false
		}
		p.worst = math.Min(p.worst, v)
	}
	if !ok {
		p.violations++
	}
}

func (p *Positivity) Value() float64 {
	if p.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(p.violations)/float64(p.samples)
}

// Worst returns the most negative concentration seen.
func (p *Positivity) Worst() float64 { return p.worst }

func (p *Positivity) Reset() {
	p.violations = 0
	p.samples = 0
	p.worst = 0
}
