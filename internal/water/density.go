// Package water provides the liquid-water property correlations that
// feed the Debye-Hückel coefficient formulas: density after Tanaka et
// al. (2001) and relative permittivity after Bradley & Pitzer (1979).
// Each correlation has a float form and a symbolic-expression builder
// so both evaluation paths share one formula.
package water

import (
	"fmt"

	"chemsim/internal/symbolic"
	"chemsim/internal/units"
)

// Tanaka et al. 2001 (Metrologia 38, 301) fit for air-free water at
// 101.325 kPa.
const (
	tanakaA1 = -3.983035  // degC
	tanakaA2 = 301.797    // degC
	tanakaA3 = 522528.9   // degC^2
	tanakaA4 = 69.34881   // degC
	tanakaA5 = 999.974950 // kg/m^3
)

// The fit is stated for 0-40 degC.
const (
	densityTMin = 273.15
	densityTMax = 313.15
)

// CelsiusOffset converts between K and degC.
const CelsiusOffset = 273.15

// Density returns the density of air-free water at temperature T (K)
// and atmospheric pressure.
func Density(T float64) (units.Quantity, error) {
	if T < densityTMin || T > densityTMax {
		return units.Quantity{}, &RangeError{
			Correlation: "tanaka-2001 density", T: T,
			Min: densityTMin, Max: densityTMax,
		}
	}
	t := T - CelsiusOffset
	rho := tanakaA5 * (1 - (t+tanakaA1)*(t+tanakaA1)*(t+tanakaA2)/(tanakaA3*(t+tanakaA4)))
	return units.Density(rho), nil
}

// DensityExpr builds the Tanaka correlation as an expression in the
// named temperature symbol (in K).
func DensityExpr(tempSym string) symbolic.Expr {
	t := symbolic.Sub2(symbolic.Symbol(tempSym), symbolic.Float(CelsiusOffset))
	tA1 := symbolic.Sum(t, symbolic.Float(tanakaA1))
	tA2 := symbolic.Sum(t, symbolic.Float(tanakaA2))
	tA4 := symbolic.Sum(t, symbolic.Float(tanakaA4))

	frac := symbolic.Div2(
		symbolic.Prod(tA1, tA1, tA2),
		symbolic.Prod(symbolic.Float(tanakaA3), tA4),
	)
	return symbolic.Prod(
		symbolic.Float(tanakaA5),
		symbolic.Sub2(symbolic.Int(1), frac),
	)
}

// RangeError reports a temperature outside a correlation's stated
// validity range.
type RangeError struct {
	Correlation string
	T, Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("water: %s not valid at %.2f K (range %.2f-%.2f K)",
		e.Correlation, e.T, e.Min, e.Max)
}
