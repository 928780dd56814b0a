package linalg

import "math"

const rrefTol = 1e-10

// RREF reduces a copy of the matrix to reduced row echelon form and
// returns it together with the pivot column indices.
func RREF(a *Matrix) (*Matrix, []int) {
	m := a.Clone()
	var pivots []int
	row := 0
	for col := 0; col < m.cols && row < m.rows; col++ {
		// largest entry in this column at or below row
		best := row
		for r := row + 1; r < m.rows; r++ {
			if math.Abs(m.At(r, col)) > math.Abs(m.At(best, col)) {
				best = r
			}
		}
		if math.Abs(m.At(best, col)) < rrefTol {
			continue
		}
		m.swapRows(best, row)
		inv := 1 / m.At(row, col)
		for c := col; c < m.cols; c++ {
			m.Set(row, c, m.At(row, c)*inv)
		}
		for r := 0; r < m.rows; r++ {
			if r == row {
				continue
			}
			f := m.At(r, col)
			if f == 0 {
				continue
			}
			for c := col; c < m.cols; c++ {
				m.Set(r, c, m.At(r, c)-f*m.At(row, c))
			}
		}
		pivots = append(pivots, col)
		row++
	}
	return m, pivots
}

// Nullspace returns a basis of the null space of a, one vector per
// free column. Entries are rounded to integers when within tolerance,
// since stoichiometric conservation laws are integral.
func Nullspace(a *Matrix) [][]float64 {
	r, pivots := RREF(a)
	isPivot := make(map[int]bool, len(pivots))
	for _, p := range pivots {
		isPivot[p] = true
	}

	var basis [][]float64
	for free := 0; free < a.cols; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]float64, a.cols)
		v[free] = 1
		for i, p := range pivots {
			v[p] = -r.At(i, free)
		}
		for j, x := range v {
			if nearest := math.Round(x); math.Abs(x-nearest) < rrefTol {
				v[j] = nearest
			}
		}
		basis = append(basis, v)
	}
	return basis
}
