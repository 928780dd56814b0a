package kinetics

import "fmt"

// TemperatureProgram gives the bath temperature as a function of
// time.
type TemperatureProgram interface {
	At(t float64) float64
	String() string
}

// ConstantT holds the temperature fixed.
type ConstantT struct {
	T float64
}

func (c ConstantT) At(float64) float64 { return c.T }

func (c ConstantT) String() string { return fmt.Sprintf("T=%g K", c.T) }

// RampT is a linear temperature ramp T(t) = T0 + Slope*t.
type RampT struct {
	T0    float64 // K
	Slope float64 // K/s
}

func (r RampT) At(t float64) float64 { return r.T0 + r.Slope*t }

func (r RampT) String() string {
	return fmt.Sprintf("T=%g K + %g K/s * t", r.T0, r.Slope)
}
