package kinetics

import (
	"math"

	"chemsim/internal/specfn"
	"chemsim/internal/symbolic"
)

// RampedDecay is the closed-form solution of a first-order decay with
// an Eyring rate under a linear temperature ramp:
//
//	dc/dt = -k(T0 + m t) c,  k(T) = C T exp(-a/T)
//
// where C = (k_B/h) exp(dS/R) and a = dH/R. The time integral of k
// reduces to
//
//	∫ T exp(-a/T) dT = exp(-a/T)(T² - aT)/2 - (a²/2) Ei(-a/T)
//
// so the reactant trajectory is elementary up to an exponential
// integral.
type RampedDecay struct {
	C0   float64 // initial reactant concentration
	Rate Eyring
	Ramp RampT
}

// kAntiderivative is (1/m) ∫ k(T) dT evaluated at T, i.e. the
// antiderivative of t -> k(T(t)).
func (d RampedDecay) kAntiderivative(T float64) float64 {
	a := d.Rate.ActivationTheta()
	c := d.Rate.Prefactor()
	f := math.Exp(-a/T)*(T*T-a*T)/2 - a*a/2*specfn.Ei(-a/T)
	return c / d.Ramp.Slope * f
}

// Reactant evaluates the closed-form reactant concentration at time
// t.
func (d RampedDecay) Reactant(t float64) float64 {
	if d.Ramp.Slope == 0 {
		// plain isothermal first-order decay
		return d.C0 * math.Exp(-d.Rate.Coefficient(d.Ramp.T0)*t)
	}
	T := d.Ramp.At(t)
	return d.C0 * math.Exp(-(d.kAntiderivative(T) - d.kAntiderivative(d.Ramp.T0)))
}

// Product evaluates a 1:1 product: everything the reactant lost.
func (d RampedDecay) Product(t float64) float64 {
	return d.C0 - d.Reactant(t)
}

// ReactantSeries evaluates the reactant at each sample time.
func (d RampedDecay) ReactantSeries(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = d.Reactant(t)
	}
	return out
}

// Expr builds the displayable closed form in the time symbol "t":
//
//	c(t) = c0 exp(-(F(T0 + m t) - F(T0)))
//
// with F containing the exponential integral.
func (d RampedDecay) Expr() symbolic.Expr {
	a := d.Rate.ActivationTheta()
	cOverM := d.Rate.Prefactor() / d.Ramp.Slope

	T := symbolic.Sum(
		symbolic.Float(d.Ramp.T0),
		symbolic.Prod(symbolic.Float(d.Ramp.Slope), symbolic.Symbol("t")),
	)
	f := func(T symbolic.Expr) symbolic.Expr {
		expTerm := symbolic.Exp(symbolic.Neg(symbolic.Div2(symbolic.Float(a), T)))
		poly := symbolic.Div2(
			symbolic.Sub2(
				symbolic.Prod(T, T),
				symbolic.Prod(symbolic.Float(a), T),
			),
			symbolic.Int(2),
		)
		ei := symbolic.Prod(
			symbolic.Float(a*a/2),
			symbolic.ExpInt(symbolic.Neg(symbolic.Div2(symbolic.Float(a), T))),
		)
		return symbolic.Sub2(symbolic.Prod(expTerm, poly), ei)
	}
	exponent := symbolic.Prod(
		symbolic.Float(-cOverM),
		symbolic.Sub2(f(T), f(symbolic.Float(d.Ramp.T0))),
	)
	return symbolic.Prod(symbolic.Float(d.C0), symbolic.Exp(exponent))
}
