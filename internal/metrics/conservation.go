package metrics

import (
	"math"

	"chemsim/internal/chem"
	"chemsim/internal/ode"
)

// MassBalance tracks the worst relative drift of one conservation law
// over a run. The law is applied to the leading species block of the
// state, so temperature appended in autonomous form is ignored.
type MassBalance struct {
	name    string
	law     chem.ConservationLaw
	initial float64
	maxRel  float64
	samples int
}

func NewMassBalance(name string, law chem.ConservationLaw) *MassBalance {
	return &MassBalance{name: name, law: law}
}

func (m *MassBalance) Name() string { return m.name }

func (m *MassBalance) Observe(x ode.State, t float64) {
	n := len(m.law.Coeffs)
	if len(x) < n {
		return
	}
	total := m.law.Apply(x[:n])

	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	if m.initial != 0 {
		rel := math.Abs(total-m.initial) / math.Abs(m.initial)
		m.maxRel = math.Max(m.maxRel, rel)
	} else {
		m.maxRel = math.Max(m.maxRel, math.Abs(total))
	}
}

func (m *MassBalance) Value() float64 { return m.maxRel }

func (m *MassBalance) Reset() {
	m.initial = 0
	m.maxRel = 0
	m.samples = 0
}
