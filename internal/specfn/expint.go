// Package specfn provides the special functions needed by the
// closed-form kinetics solutions: the exponential integrals Ei and E1.
package specfn

import "math"

const (
	eulerGamma = 0.5772156649015328606
	maxIter    = 200
	eps        = 1e-16
	fpMin      = 1e-300
)

// E1 computes the exponential integral E1(x) = ∫_x^∞ exp(-t)/t dt
// for x > 0. Power series below 1, modified Lentz continued fraction
// above.
func E1(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(1)
	case x <= 1:
		return e1Series(x)
	default:
		return e1ContinuedFraction(x)
	}
}

func e1Series(x float64) float64 {
	sum := 0.0
	term := 1.0
	for k := 1; k <= maxIter; k++ {
		term *= -x / float64(k)
		delta := -term / float64(k)
		sum += delta
		if math.Abs(delta) < math.Abs(sum)*eps {
			break
		}
	}
	return sum - eulerGamma - math.Log(x)
}

func e1ContinuedFraction(x float64) float64 {
	b := x + 1
	c := 1 / fpMin
	d := 1 / b
	h := d
	for i := 1; i <= maxIter; i++ {
		a := -float64(i) * float64(i)
		b += 2
		d = 1 / (a*d + b)
		c = b + a/c
		delta := c * d
		h *= delta
		if math.Abs(delta-1) < eps {
			break
		}
	}
	return h * math.Exp(-x)
}

// Ei computes the exponential integral Ei(x) = -PV ∫_{-x}^∞ exp(-t)/t dt.
// Defined for all x != 0; Ei(-x) = -E1(x) for x > 0.
func Ei(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x < 0:
		return -E1(-x)
	case x == 0:
		return math.Inf(-1)
	case x < eiSeriesCutoff:
		return eiSeries(x)
	default:
		return eiAsymptotic(x)
	}
}

// Above the cutoff the power series needs more terms than the
// asymptotic expansion and loses accuracy to cancellation.
var eiSeriesCutoff = -math.Log(eps)

func eiSeries(x float64) float64 {
	sum := 0.0
	term := 1.0
	for k := 1; k <= maxIter; k++ {
		term *= x / float64(k)
		delta := term / float64(k)
		sum += delta
		if delta < sum*eps {
			break
		}
	}
	return sum + eulerGamma + math.Log(x)
}

func eiAsymptotic(x float64) float64 {
	sum := 1.0
	term := 1.0
	for k := 1; k <= maxIter; k++ {
		prev := term
		term *= float64(k) / x
		if term > prev {
			// divergent tail, stop at the smallest term
			break
		}
		sum += term
		if term < sum*eps {
			break
		}
	}
	return math.Exp(x) / x * sum
}
