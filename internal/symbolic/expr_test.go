package symbolic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyIdentities(t *testing.T) {
	x := Symbol("x")

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"add zero", Sum(x, Int(0)), "x"},
		{"mul one", Prod(x, Int(1)), "x"},
		{"mul zero", Prod(x, Int(0)), "0"},
		{"pow zero", Power(x, Int(0)), "1"},
		{"pow one", Power(x, Int(1)), "x"},
		{"numeric fold", Sum(Int(2), Int(3), x), "x + 5"},
		{"exp zero", Exp(Int(0)), "1"},
		{"ln one", Ln(Int(1)), "0"},
		{"exp ln", Exp(Ln(x)), "x"},
		{"nested pow", Power(Power(x, Int(2)), Int(3)), "x^6"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.expr.String(), tt.name)
	}
}

func TestZeroBasePow(t *testing.T) {
	assert.Equal(t, "0", Power(Int(0), Int(2)).String())
	assert.Equal(t, "1", Power(Int(0), Int(0)).String())

	inv := Power(Int(0), Int(-1))
	_, folded := inv.(*Num)
	assert.False(t, folded, "0^-1 must not fold to a constant")

	sym := Power(Int(0), Symbol("x"))
	_, folded = sym.(*Num)
	assert.False(t, folded, "0^x must stay symbolic")
}

func TestFloatRejectsNonFinite(t *testing.T) {
	assert.Panics(t, func() { Float(math.NaN()) })
	assert.Panics(t, func() { Float(math.Inf(1)) })
	assert.Panics(t, func() { Float(math.Inf(-1)) })
	assert.NotPanics(t, func() { Float(1.5e300) })
}

func TestSimplifyIdempotent(t *testing.T) {
	x := Symbol("x")
	e := Prod(Int(2), Power(Sum(x, Int(1)), Rat(3, 2)), Exp(Neg(x)))
	once := e.Simplify()
	twice := once.Simplify()
	assert.Equal(t, once.String(), twice.String())
}

func TestDiff(t *testing.T) {
	x := Symbol("x")

	// d/dx x^3 = 3x^2
	d := Power(x, Int(3)).Diff("x")
	v, err := d.Eval(map[string]float64{"x": 2})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, v, 1e-12)

	// d/dx exp(-a/x) = exp(-a/x) * a/x^2
	a := Symbol("a")
	e := Exp(Neg(Div2(a, x)))
	d = e.Diff("x")
	env := map[string]float64{"a": 3, "x": 2}
	v, err = d.Eval(env)
	require.NoError(t, err)
	want := math.Exp(-1.5) * 3.0 / 4.0
	assert.InDelta(t, want, v, 1e-12)

	// constants vanish
	assert.Equal(t, "0", Prod(Int(5), a).Diff("x").String())
}

func TestDiffProductRule(t *testing.T) {
	x := Symbol("x")
	e := Prod(x, Exp(x))
	d := e.Diff("x")
	// (x e^x)' = e^x (1 + x)
	for _, xv := range []float64{0.0, 1.0, -2.5} {
		v, err := d.Eval(map[string]float64{"x": xv})
		require.NoError(t, err)
		assert.InDelta(t, math.Exp(xv)*(1+xv), v, 1e-12)
	}
}

func TestSubstitution(t *testing.T) {
	T := Symbol("T")
	T0 := Symbol("T0")
	m := Symbol("m")
	tt := Symbol("t")

	// T -> T0 + m*t
	ramp := Sum(T0, Prod(m, tt))
	e := Exp(Neg(Div2(Int(9000), T))).Sub("T", ramp)

	v, err := e.Eval(map[string]float64{"T0": 290, "m": 1, "t": 10})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-9000.0/300.0), v, 1e-15)
}

func TestEvalUnbound(t *testing.T) {
	_, err := Symbol("q").Eval(nil)
	require.Error(t, err)
	var ue *UnboundError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "q", ue.Name)
}

func TestExpIntEval(t *testing.T) {
	v, err := ExpInt(Int(1)).Eval(nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.8951178163559368, v, 1e-10)
}

func TestLaTeX(t *testing.T) {
	T := Symbol("T")
	e := Div2(Prod(Int(3), Power(T, Rat(3, 2))), Symbol("eps_r"))
	s := e.LaTeX()
	assert.Contains(t, s, "T^{")
	assert.Contains(t, s, "\\varepsilon_r")
}

func TestEqualUnordered(t *testing.T) {
	x, y := Symbol("x"), Symbol("y")
	assert.True(t, Sum(x, y).Equal(Sum(y, x)))
	assert.True(t, Prod(x, y, Int(2)).Equal(Prod(Int(2), y, x)))
	assert.False(t, Sum(x, y).Equal(Sum(x, x)))
}
