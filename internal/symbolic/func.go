package symbolic

import (
	"fmt"
	"math"

	"chemsim/internal/specfn"
)

// Func is a named unary function application. The recognized names
// carry evaluation and differentiation rules; anything else stays
// uninterpreted and fails Eval.
type Func struct {
	name string
	arg  Expr
}

func Exp(arg Expr) Expr { return (&Func{name: "exp", arg: arg}).Simplify() }
func Ln(arg Expr) Expr  { return (&Func{name: "ln", arg: arg}).Simplify() }

// ExpInt is the exponential integral Ei, which appears in the
// closed-form solution of temperature-ramped rate laws.
func ExpInt(arg Expr) Expr { return (&Func{name: "Ei", arg: arg}).Simplify() }

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	switch f.name {
	case "exp":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return Int(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "ln":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return Int(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) Sub(name string, value Expr) Expr {
	return (&Func{name: f.name, arg: f.arg.Sub(name, value)}).Simplify()
}

func (f *Func) Diff(name string) Expr {
	inner := f.arg.Diff(name)
	switch f.name {
	case "exp":
		return Prod(f, inner)
	case "ln":
		return Div2(inner, f.arg)
	case "Ei":
		// Ei'(x) = exp(x)/x
		return Prod(Div2(Exp(f.arg), f.arg), inner)
	}
	return &Derivative{of: f, wrt: name}
}

func (f *Func) Eval(env map[string]float64) (float64, error) {
	v, err := f.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	switch f.name {
	case "exp":
		return math.Exp(v), nil
	case "ln":
		return math.Log(v), nil
	case "Ei":
		return specfn.Ei(v), nil
	}
	return 0, fmt.Errorf("symbolic: cannot evaluate %s", f.name)
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) String() string {
	return f.name + "(" + f.arg.String() + ")"
}

func (f *Func) LaTeX() string {
	switch f.name {
	case "exp":
		return "e^{" + f.arg.LaTeX() + "}"
	case "ln":
		return "\\ln\\left(" + f.arg.LaTeX() + "\\right)"
	case "Ei":
		return "\\operatorname{Ei}\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return fmt.Sprintf("\\operatorname{%s}\\left(%s\\right)", f.name, f.arg.LaTeX())
}

// Derivative is an unevaluated derivative of an uninterpreted
// function.
type Derivative struct {
	of  Expr
	wrt string
}

func (d *Derivative) Simplify() Expr { return d }

func (d *Derivative) Sub(name string, value Expr) Expr {
	return &Derivative{of: d.of.Sub(name, value), wrt: d.wrt}
}

func (d *Derivative) Diff(name string) Expr {
	return &Derivative{of: d, wrt: name}
}

func (d *Derivative) Eval(map[string]float64) (float64, error) {
	return 0, fmt.Errorf("symbolic: cannot evaluate unexpanded derivative of %s", d.of)
}

func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && d.wrt == o.wrt && d.of.Equal(o.of)
}

func (d *Derivative) String() string {
	return fmt.Sprintf("d/d%s[%s]", d.wrt, d.of)
}

func (d *Derivative) LaTeX() string {
	return fmt.Sprintf("\\frac{d}{d%s}\\left[%s\\right]", d.wrt, d.of.LaTeX())
}
