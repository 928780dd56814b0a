// Package linalg provides the small dense-matrix operations the
// solver needs: LU solves for the Rosenbrock stages and row reduction
// for stoichiometric conservation laws.
package linalg

import "errors"

var ErrSingular = errors.New("linalg: matrix is singular")

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

func New(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func (m *Matrix) Rows() int            { return m.rows }
func (m *Matrix) Cols() int            { return m.cols }
func (m *Matrix) At(r, c int) float64  { return m.data[r*m.cols+c] }
func (m *Matrix) Set(r, c int, v float64) {
	m.data[r*m.cols+c] = v
}

func (m *Matrix) Clone() *Matrix {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

func (m *Matrix) Transpose() *Matrix {
	res := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			res.Set(j, i, m.At(i, j))
		}
	}
	return res
}

// MulVec computes m * v.
func (m *Matrix) MulVec(v []float64) []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

// LU holds a factorization P*A = L*U with partial pivoting.
type LU struct {
	lu   *Matrix
	perm []int
	n    int
}

// Factorize computes the LU decomposition of a square matrix.
func Factorize(a *Matrix) (*LU, error) {
	if a.rows != a.cols {
		return nil, errors.New("linalg: LU needs a square matrix")
	}
	n := a.rows
	lu := a.Clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for col := 0; col < n; col++ {
		pivot := col
		maxAbs := abs(lu.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := abs(lu.At(r, col)); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs == 0 {
			return nil, ErrSingular
		}
		if pivot != col {
			lu.swapRows(pivot, col)
			perm[pivot], perm[col] = perm[col], perm[pivot]
		}
		inv := 1 / lu.At(col, col)
		for r := col + 1; r < n; r++ {
			f := lu.At(r, col) * inv
			lu.Set(r, col, f)
			for c := col + 1; c < n; c++ {
				lu.Set(r, c, lu.At(r, c)-f*lu.At(col, c))
			}
		}
	}
	return &LU{lu: lu, perm: perm, n: n}, nil
}

// Solve solves A x = b using the factorization.
func (f *LU) Solve(b []float64) []float64 {
	n := f.n
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// forward: L y = P b
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			x[i] -= f.lu.At(i, j) * x[j]
		}
	}
	// backward: U x = y
	for i := n - 1; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			x[i] -= f.lu.At(i, j) * x[j]
		}
		x[i] /= f.lu.At(i, i)
	}
	return x
}

func (m *Matrix) swapRows(a, b int) {
	for c := 0; c < m.cols; c++ {
		m.data[a*m.cols+c], m.data[b*m.cols+c] = m.data[b*m.cols+c], m.data[a*m.cols+c]
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
