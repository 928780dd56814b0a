// Package kinetics turns a chem.ReactionSystem into an integrable ODE
// system: rate-law parameterizations, temperature programs, the law
// of mass action, and the closed-form reference solution for a
// temperature-ramped first-order decay.
package kinetics

import (
	"fmt"
	"math"

	"chemsim/internal/chem"
	"chemsim/internal/symbolic"
	"chemsim/internal/units"
)

// Rate is a temperature-dependent rate coefficient with a parallel
// symbolic form.
type Rate interface {
	Coefficient(T float64) float64
	Expr(tempSym string) symbolic.Expr
	String() string
}

// Const is a temperature-independent rate constant.
type Const struct {
	K float64
}

func (c Const) Coefficient(float64) float64 { return c.K }

func (c Const) Expr(string) symbolic.Expr { return symbolic.Float(c.K) }

func (c Const) String() string { return fmt.Sprintf("%g", c.K) }

// Arrhenius is k(T) = A exp(-Ea/(R T)), Ea in J/mol.
type Arrhenius struct {
	A  float64
	Ea float64
}

func (a Arrhenius) Coefficient(T float64) float64 {
	return a.A * math.Exp(-a.Ea/(units.GasConstant.Value*T))
}

func (a Arrhenius) Expr(tempSym string) symbolic.Expr {
	T := symbolic.Symbol(tempSym)
	return symbolic.Prod(
		symbolic.Float(a.A),
		symbolic.Exp(symbolic.Neg(symbolic.Div2(
			symbolic.Float(a.Ea/units.GasConstant.Value), T,
		))),
	)
}

func (a Arrhenius) String() string {
	return fmt.Sprintf("arrhenius(A=%g, Ea=%g)", a.A, a.Ea)
}

// Eyring is transition-state theory,
// k(T) = (k_B T / h) exp(dS/R) exp(-dH/(R T)),
// with activation enthalpy dH (J/mol) and entropy dS (J/(K mol)).
type Eyring struct {
	DeltaH float64
	DeltaS float64
}

// Prefactor is (k_B/h) exp(dS/R), the temperature-linear coefficient.
func (e Eyring) Prefactor() float64 {
	return units.Boltzmann.Value / units.Planck.Value *
		math.Exp(e.DeltaS/units.GasConstant.Value)
}

// ActivationTheta is dH/R, the activation temperature in K.
func (e Eyring) ActivationTheta() float64 {
	return e.DeltaH / units.GasConstant.Value
}

func (e Eyring) Coefficient(T float64) float64 {
	return e.Prefactor() * T * math.Exp(-e.ActivationTheta()/T)
}

func (e Eyring) Expr(tempSym string) symbolic.Expr {
	T := symbolic.Symbol(tempSym)
	return symbolic.Prod(
		symbolic.Float(e.Prefactor()),
		T,
		symbolic.Exp(symbolic.Neg(symbolic.Div2(
			symbolic.Float(e.ActivationTheta()), T,
		))),
	)
}

func (e Eyring) String() string {
	return fmt.Sprintf("eyring(dH=%g, dS=%g)", e.DeltaH, e.DeltaS)
}

// RateSum adds component coefficients (parallel pathways).
type RateSum []Rate

func (s RateSum) Coefficient(T float64) float64 {
	total := 0.0
	for _, r := range s {
		total += r.Coefficient(T)
	}
	return total
}

func (s RateSum) Expr(tempSym string) symbolic.Expr {
	terms := make([]symbolic.Expr, len(s))
	for i, r := range s {
		terms[i] = r.Expr(tempSym)
	}
	return symbolic.Sum(terms...)
}

func (s RateSum) String() string {
	out := "sum("
	for i, r := range s {
		if i > 0 {
			out += ", "
		}
		out += r.String()
	}
	return out + ")"
}

// RateQuotient divides two coefficients (e.g. equilibrium-derived
// reverse rates).
type RateQuotient struct {
	Num, Den Rate
}

func (q RateQuotient) Coefficient(T float64) float64 {
	return q.Num.Coefficient(T) / q.Den.Coefficient(T)
}

func (q RateQuotient) Expr(tempSym string) symbolic.Expr {
	return symbolic.Div2(q.Num.Expr(tempSym), q.Den.Expr(tempSym))
}

func (q RateQuotient) String() string {
	return fmt.Sprintf("quotient(%s, %s)", q.Num, q.Den)
}

// FromSpec resolves a parsed mini-language rate spec.
func FromSpec(spec chem.RateSpec) (Rate, error) {
	switch spec.Name {
	case "const":
		if len(spec.Args) != 1 {
			return nil, fmt.Errorf("kinetics: const rate needs 1 argument, got %d", len(spec.Args))
		}
		return Const{K: spec.Args[0]}, nil
	case "arrhenius":
		if len(spec.Args) != 2 {
			return nil, fmt.Errorf("kinetics: arrhenius needs (A, Ea), got %d arguments", len(spec.Args))
		}
		return Arrhenius{A: spec.Args[0], Ea: spec.Args[1]}, nil
	case "eyring":
		if len(spec.Args) != 2 {
			return nil, fmt.Errorf("kinetics: eyring needs (dH, dS), got %d arguments", len(spec.Args))
		}
		return Eyring{DeltaH: spec.Args[0], DeltaS: spec.Args[1]}, nil
	}
	return nil, fmt.Errorf("kinetics: unknown rate law %q", spec.Name)
}

// MassActionRate evaluates one reaction's law-of-mass-action rate,
// k(T) * prod conc_i^coeff.
func MassActionRate(rs *chem.ReactionSystem, j int, rate Rate, conc []float64, T float64) float64 {
	r := rate.Coefficient(T)
	for name, coeff := range rs.Reactions[j].Reac {
		i, _ := rs.Index(name)
		for c := 0; c < coeff; c++ {
			r *= conc[i]
		}
	}
	return r
}

// MassActionExpr is the symbolic form of one reaction's rate with
// concentrations as bracketed symbols.
func MassActionExpr(rs *chem.ReactionSystem, j int, rate Rate, tempSym string) symbolic.Expr {
	factors := []symbolic.Expr{rate.Expr(tempSym)}
	rxn := rs.Reactions[j]
	for _, name := range rs.Species {
		coeff, ok := rxn.Reac[name]
		if !ok {
			continue
		}
		sym := symbolic.Symbol("[" + name + "]")
		if coeff == 1 {
			factors = append(factors, sym)
		} else {
			factors = append(factors, symbolic.Power(sym, symbolic.Int(int64(coeff))))
		}
	}
	return symbolic.Prod(factors...)
}
