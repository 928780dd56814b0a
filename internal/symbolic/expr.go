// Package symbolic implements the small expression-tree algebra used
// for the second evaluation path: closed-form chemistry formulas
// rendered and manipulated as algebra instead of floats.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// Expr is an immutable algebraic expression. Constructors return
// already-simplified trees; Simplify is idempotent.
type Expr interface {
	Simplify() Expr
	Diff(name string) Expr
	Sub(name string, value Expr) Expr
	Eval(env map[string]float64) (float64, error)
	Equal(other Expr) bool
	String() string
	LaTeX() string
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Rat(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: big.NewRat(p, q)}
}

func Float(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("symbolic: non-finite constant")
	}
	r, ok := new(big.Rat).SetString(fmt.Sprintf("%g", f))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
	}
	return &Num{val: r}
}

func (n *Num) Simplify() Expr          { return n }
func (n *Num) Sub(string, Expr) Expr   { return n }
func (n *Num) Diff(string) Expr        { return Int(0) }
func (n *Num) Float64() float64        { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool            { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool             { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsInteger() bool         { return n.val.IsInt() }
func (n *Num) IsNegative() bool        { return n.val.Sign() < 0 }

func (n *Num) Eval(map[string]float64) (float64, error) {
	return n.Float64(), nil
}

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	// simple fractions read better exact; decimal literals as decimals
	if n.val.Denom().Cmp(bigSmallDenom) <= 0 {
		return n.val.RatString()
	}
	f, _ := n.val.Float64()
	return fmt.Sprintf("%g", f)
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if n.val.Denom().Cmp(bigSmallDenom) <= 0 {
		return fmt.Sprintf("\\frac{%s}{%s}", n.val.Num(), n.val.Denom())
	}
	f, _ := n.val.Float64()
	return fmt.Sprintf("%g", f)
}

var (
	ratOne        = big.NewRat(1, 1)
	bigSmallDenom = big.NewInt(64)
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

// Sym is a free variable.
type Sym struct{ name string }

func Symbol(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr   { return s }
func (s *Sym) Name() string     { return s.name }
func (s *Sym) String() string   { return s.name }
func (s *Sym) LaTeX() string    { return latexName(s.name) }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return Int(1)
	}
	return Int(0)
}

func (s *Sym) Eval(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, &UnboundError{Name: s.name}
	}
	return v, nil
}

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

var greekNames = map[string]string{
	"alpha": "\\alpha", "beta": "\\beta", "gamma": "\\gamma",
	"delta": "\\delta", "eps_r": "\\varepsilon_r", "rho": "\\rho",
	"theta": "\\theta", "lambda": "\\lambda", "pi": "\\pi",
}

func latexName(name string) string {
	if g, ok := greekNames[name]; ok {
		return g
	}
	return name
}

// UnboundError reports evaluation of an expression with a free symbol.
type UnboundError struct{ Name string }

func (e *UnboundError) Error() string {
	return fmt.Sprintf("symbolic: unbound symbol %q", e.Name)
}
