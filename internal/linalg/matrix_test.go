package linalg

import (
	"errors"
	"math"
	"testing"
)

func TestLUSolve(t *testing.T) {
	a := New(3, 3)
	vals := [][]float64{
		{2, 1, -1},
		{-3, -1, 2},
		{-2, 1, 2},
	}
	for i := range vals {
		for j, v := range vals[i] {
			a.Set(i, j, v)
		}
	}

	f, err := Factorize(a)
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}

	x := f.Solve([]float64{8, -11, -3})
	want := []float64{2, 3, -1}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestLUSingular(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, 1)
	a.Set(0, 1, 2)
	a.Set(1, 0, 2)
	a.Set(1, 1, 4)

	if _, err := Factorize(a); !errors.Is(err, ErrSingular) {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}

func TestLUResidual(t *testing.T) {
	// pivoting required: zero on the diagonal
	a := New(2, 2)
	a.Set(0, 0, 0)
	a.Set(0, 1, 1)
	a.Set(1, 0, 1)
	a.Set(1, 1, 1)

	f, err := Factorize(a)
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}
	b := []float64{3, 5}
	x := f.Solve(b)
	ax := a.MulVec(x)
	for i := range b {
		if math.Abs(ax[i]-b[i]) > 1e-12 {
			t.Errorf("residual at %d: %v vs %v", i, ax[i], b[i])
		}
	}
}

// Nullspace of the transposed net stoichiometric matrix gives the
// conserved linear combinations. For A -> B + C the net matrix has a
// single column (-1, 1, 1).
func TestNullspaceDecay(t *testing.T) {
	nt := New(1, 3)
	nt.Set(0, 0, -1)
	nt.Set(0, 1, 1)
	nt.Set(0, 2, 1)

	basis := Nullspace(nt)
	if len(basis) != 2 {
		t.Fatalf("expected 2 conservation laws, got %d", len(basis))
	}
	for _, v := range basis {
		dot := -v[0] + v[1] + v[2]
		if math.Abs(dot) > 1e-12 {
			t.Errorf("basis vector %v not in nullspace", v)
		}
	}
}

func TestNullspaceFullRank(t *testing.T) {
	if basis := Nullspace(Identity(3)); len(basis) != 0 {
		t.Errorf("identity has no nullspace, got %d vectors", len(basis))
	}
}
