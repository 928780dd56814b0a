package metrics

import "chemsim/internal/ode"

// Conversion tracks the fractional consumption of one species,
// (c0 - c)/c0, at the latest observed sample.
type Conversion struct {
	name    string
	index   int
	initial float64
	current float64
	samples int
}

func NewConversion(species string, index int) *Conversion {
	return &Conversion{name: "conversion_" + species, index: index}
}

func (c *Conversion) Name() string { return c.name }

func (c *Conversion) Observe(x ode.State, t float64) {
	if c.index >= len(x) {
		return
	}
	v := x[c.index]
	if c.samples == 0 {
		c.initial = v
	}
	c.current = v
	c.samples++
}

func (c *Conversion) Value() float64 {
	if c.initial == 0 {
		return 0
	}
	return (c.initial - c.current) / c.initial
}

func (c *Conversion) Reset() {
	c.initial = 0
	c.current = 0
	c.samples = 0
}
