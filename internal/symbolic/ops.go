package symbolic

import (
	"math"
	"sort"
	"strings"
)

// Add is an n-ary sum.
type Add struct{ terms []Expr }

func Sum(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func Sub2(a, b Expr) Expr { return Sum(a, Neg(b)) }

func Neg(e Expr) Expr { return Prod(Int(-1), e) }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	num := Int(0)
	var rest []Expr
	for _, t := range a.terms {
		t = t.Simplify()
		switch v := t.(type) {
		case *Num:
			num = numAdd(num, v)
		case *Add:
			for _, inner := range v.terms {
				if n, ok := inner.(*Num); ok {
					num = numAdd(num, n)
				} else {
					rest = append(rest, inner)
				}
			}
		default:
			rest = append(rest, t)
		}
	}
	if !num.IsZero() {
		rest = append(rest, num)
	}
	switch len(rest) {
	case 0:
		return Int(0)
	case 1:
		return rest[0]
	}
	return &Add{terms: rest}
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return Sum(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return Sum(out...)
}

func (a *Add) Eval(env map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	return unorderedEqual(a.terms, o.terms)
}

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i > 0 {
			if strings.HasPrefix(s, "-") {
				sb.WriteString(" - ")
				s = s[1:]
			} else {
				sb.WriteString(" + ")
			}
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		if i > 0 {
			if strings.HasPrefix(s, "-") {
				sb.WriteString(" - ")
				s = s[1:]
			} else {
				sb.WriteString(" + ")
			}
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// Mul is an n-ary product.
type Mul struct{ factors []Expr }

func Prod(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func Div2(a, b Expr) Expr { return Prod(a, Power(b, Int(-1))) }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	num := Int(1)
	var rest []Expr
	for _, f := range m.factors {
		f = f.Simplify()
		switch v := f.(type) {
		case *Num:
			num = numMul(num, v)
		case *Mul:
			for _, inner := range v.factors {
				if n, ok := inner.(*Num); ok {
					num = numMul(num, n)
				} else {
					rest = append(rest, inner)
				}
			}
		default:
			rest = append(rest, f)
		}
	}
	if num.IsZero() {
		return Int(0)
	}
	if !num.IsOne() {
		rest = append([]Expr{num}, rest...)
	}
	switch len(rest) {
	case 0:
		return Int(1)
	case 1:
		return rest[0]
	}
	return &Mul{factors: rest}
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return Prod(out...)
}

// Diff applies the product rule.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, len(m.factors))
		copy(parts, m.factors)
		parts[i] = m.factors[i].Diff(name)
		terms = append(terms, Prod(parts...))
	}
	return Sum(terms...)
}

func (m *Mul) Eval(env map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	return unorderedEqual(m.factors, o.factors)
}

func (m *Mul) String() string {
	return m.render(false, "*")
}

func (m *Mul) LaTeX() string {
	return m.render(true, " \\cdot ")
}

func (m *Mul) render(latex bool, sep string) string {
	factors := m.factors
	prefix := ""
	if n, ok := factors[0].(*Num); ok && len(factors) > 1 && n.Equal(Int(-1)) {
		prefix = "-"
		factors = factors[1:]
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = mulOperand(f, latex)
	}
	return prefix + strings.Join(parts, sep)
}

func mulOperand(e Expr, latex bool) string {
	s := e.String()
	if latex {
		s = e.LaTeX()
	}
	if _, ok := e.(*Add); ok {
		if latex {
			return "\\left(" + s + "\\right)"
		}
		return "(" + s + ")"
	}
	return s
}

// Pow is base^exponent.
type Pow struct{ base, exp Expr }

func Power(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func Sqrt(e Expr) Expr { return Power(e, Rat(1, 2)) }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if n, ok := exp.(*Num); ok {
		if n.IsZero() {
			return Int(1)
		}
		if n.IsOne() {
			return base
		}
	}
	if b, ok := base.(*Num); ok {
		if b.IsZero() {
			// 0^e folds only when the exponent is known positive;
			// 0^-1 must not become 0.
			if n, ok := exp.(*Num); ok && !n.IsNegative() {
				return Int(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if b.IsOne() {
			return Int(1)
		}
		// fold small integer powers of rationals exactly
		if n, ok := exp.(*Num); ok && n.IsInteger() {
			if e := n.val.Num().Int64(); e > -16 && e < 16 {
				return foldIntPow(b, e)
			}
		}
	}
	// (x^a)^b -> x^(a*b)
	if inner, ok := base.(*Pow); ok {
		return Power(inner.base, Prod(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func foldIntPow(b *Num, e int64) Expr {
	r := Int(1)
	abs := e
	if abs < 0 {
		abs = -abs
	}
	for i := int64(0); i < abs; i++ {
		r = numMul(r, b)
	}
	if e < 0 {
		inv := Rat(1, 1)
		inv.val.Inv(r.val)
		return inv
	}
	return r
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return Power(p.base.Sub(name, value), p.exp.Sub(name, value))
}

// Diff handles the two common cases: constant exponent and constant
// base (f^c and c^f); the general rule goes through exp/ln.
func (p *Pow) Diff(name string) Expr {
	if isConstant(p.exp, name) {
		// c * f^(c-1) * f'
		return Prod(
			p.exp,
			Power(p.base, Sub2(p.exp, Int(1))),
			p.base.Diff(name),
		)
	}
	if isConstant(p.base, name) {
		// f^g with f constant: f^g * ln(f) * g'
		return Prod(p, Ln(p.base), p.exp.Diff(name))
	}
	// f^g = exp(g ln f)
	return Prod(p, Sum(
		Prod(p.exp.Diff(name), Ln(p.base)),
		Prod(p.exp, Div2(p.base.Diff(name), p.base)),
	))
}

func isConstant(e Expr, name string) bool {
	d := e.Diff(name)
	n, ok := d.(*Num)
	return ok && n.IsZero()
}

func (p *Pow) Eval(env map[string]float64) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}
	return math.Pow(b, e), nil
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) String() string {
	base := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "(" + base + ")"
	default:
		if n, ok := p.base.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			base = "(" + base + ")"
		}
	}
	exp := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		exp = "(" + exp + ")"
	default:
		if n, ok := p.exp.(*Num); ok && (n.IsNegative() || !n.IsInteger()) {
			exp = "(" + exp + ")"
		}
	}
	return base + "^" + exp
}

func (p *Pow) LaTeX() string {
	base := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "\\left(" + base + "\\right)"
	}
	return base + "^{" + p.exp.LaTeX() + "}"
}

func unorderedEqual(a, b []Expr) bool {
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = a[i].String()
		bs[i] = b[i].String()
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
