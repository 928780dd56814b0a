package water

import (
	"math"

	"chemsim/internal/symbolic"
)

// Bradley & Pitzer 1979 (J. Phys. Chem. 83, 1599) parameters for the
// static relative permittivity of water. Pressure in bar.
const (
	bpU1 = 3.4279e2
	bpU2 = -5.0866e-3
	bpU3 = 9.4690e-7
	bpU4 = -2.0525
	bpU5 = 3.1159e3
	bpU6 = -1.8289e2
	bpU7 = -8.0325e3
	bpU8 = 4.2142e6
	bpU9 = 2.1417
)

const (
	permittivityTMin = 273.15
	permittivityTMax = 623.15
)

// Permittivity returns the static relative permittivity of water at
// temperature T (K) and pressure P (bar). Dimensionless.
func Permittivity(T, P float64) (float64, error) {
	if T < permittivityTMin || T > permittivityTMax {
		return 0, &RangeError{
			Correlation: "bradley-pitzer-1979 permittivity", T: T,
			Min: permittivityTMin, Max: permittivityTMax,
		}
	}
	e1000 := bpU1 * math.Exp(bpU2*T+bpU3*T*T)
	c := bpU4 + bpU5/(bpU6+T)
	b := bpU7 + bpU8/T + bpU9*T
	return e1000 + c*math.Log((b+P)/(b+1000)), nil
}

// PermittivityExpr builds the Bradley-Pitzer correlation as an
// expression in the named temperature and pressure symbols.
func PermittivityExpr(tempSym, pressureSym string) symbolic.Expr {
	T := symbolic.Symbol(tempSym)
	P := symbolic.Symbol(pressureSym)

	e1000 := symbolic.Prod(
		symbolic.Float(bpU1),
		symbolic.Exp(symbolic.Sum(
			symbolic.Prod(symbolic.Float(bpU2), T),
			symbolic.Prod(symbolic.Float(bpU3), T, T),
		)),
	)
	c := symbolic.Sum(
		symbolic.Float(bpU4),
		symbolic.Div2(symbolic.Float(bpU5), symbolic.Sum(symbolic.Float(bpU6), T)),
	)
	b := symbolic.Sum(
		symbolic.Float(bpU7),
		symbolic.Div2(symbolic.Float(bpU8), T),
		symbolic.Prod(symbolic.Float(bpU9), T),
	)
	logArg := symbolic.Div2(
		symbolic.Sum(b, P),
		symbolic.Sum(b, symbolic.Int(1000)),
	)
	return symbolic.Sum(e1000, symbolic.Prod(c, symbolic.Ln(logArg)))
}
