package electrolytes

import (
	"math"

	"chemsim/internal/symbolic"
	"chemsim/internal/units"
)

// Symbol names used by the symbolic forms.
const (
	SymPermittivity  = "eps_r"
	SymTemperature   = "T"
	SymDensity       = "rho"
	SymIonicStrength = "I"
)

// AExpr builds the A coefficient as an expression in eps_r, T and
// rho. Physical constants are folded to numeric literals, matching
// what the float form computes.
func AExpr() symbolic.Expr {
	epsR := symbolic.Symbol(SymPermittivity)
	T := symbolic.Symbol(SymTemperature)
	rho := symbolic.Symbol(SymDensity)

	pre := symbolic.Sqrt(symbolic.Prod(
		symbolic.Float(2*math.Pi*units.Avogadro.Value),
		rho,
	))
	bjerrum := symbolic.Div2(
		symbolic.Float(bjerrumNumerator()),
		symbolic.Prod(epsR, T),
	)
	return symbolic.Prod(pre, symbolic.Power(bjerrum, symbolic.Rat(3, 2)))
}

// BExpr builds the B coefficient as an expression in eps_r, T and
// rho.
func BExpr() symbolic.Expr {
	epsR := symbolic.Symbol(SymPermittivity)
	T := symbolic.Symbol(SymTemperature)
	rho := symbolic.Symbol(SymDensity)

	ratio := symbolic.Div2(
		symbolic.Prod(symbolic.Float(2*units.Avogadro.Value), rho),
		symbolic.Prod(
			symbolic.Float(units.VacuumPermittivity.Value*units.Boltzmann.Value),
			epsR, T,
		),
	)
	return symbolic.Prod(
		symbolic.Float(units.ElementaryCharge.Value),
		symbolic.Sqrt(ratio),
	)
}

func bjerrumNumerator() float64 {
	e := units.ElementaryCharge.Value
	return e * e / (4 * math.Pi * units.VacuumPermittivity.Value * units.Boltzmann.Value)
}

// LimitingLnGammaExpr is -A z^2 sqrt(I) with A left as a free
// expression.
func LimitingLnGammaExpr(aExpr symbolic.Expr, z int) symbolic.Expr {
	return symbolic.Prod(
		symbolic.Int(int64(-z*z)),
		aExpr,
		symbolic.Sqrt(symbolic.Symbol(SymIonicStrength)),
	)
}

// ExtendedLnGammaExpr is -A z^2 sqrt(I)/(1 + B a0 sqrt(I)).
func ExtendedLnGammaExpr(aExpr, bExpr symbolic.Expr, ionSize float64, z int) symbolic.Expr {
	sqrtI := symbolic.Sqrt(symbolic.Symbol(SymIonicStrength))
	num := symbolic.Prod(symbolic.Int(int64(-z*z)), aExpr, sqrtI)
	den := symbolic.Sum(
		symbolic.Int(1),
		symbolic.Prod(bExpr, symbolic.Float(ionSize), sqrtI),
	)
	return symbolic.Div2(num, den)
}

// DaviesLnGammaExpr is -A z^2 (sqrt(I)/(1+sqrt(I)) - 0.3 I).
func DaviesLnGammaExpr(aExpr symbolic.Expr, z int) symbolic.Expr {
	I := symbolic.Symbol(SymIonicStrength)
	sqrtI := symbolic.Sqrt(I)
	bracket := symbolic.Sub2(
		symbolic.Div2(sqrtI, symbolic.Sum(symbolic.Int(1), sqrtI)),
		symbolic.Prod(symbolic.Float(daviesC), I),
	)
	return symbolic.Prod(symbolic.Int(int64(-z*z)), aExpr, bracket)
}
