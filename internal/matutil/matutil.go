// Package matutil provides small matrix helpers shared by the numeric packages.
package matutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// HasNonFinite reports whether m contains a NaN or Inf entry.
func HasNonFinite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}
	return false
}

// SliceHasNonFinite reports whether v contains a NaN or Inf entry.
func SliceHasNonFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

// SignNormalizeColumns flips the sign of each column of m so that the entry
// with the largest absolute value is positive. On ties the lowest row index
// wins, which keeps the convention deterministic across runs.
func SignNormalizeColumns(m *mat.Dense) {
	r, c := m.Dims()
	for j := 0; j < c; j++ {
		maxAbs := 0.0
		pivot := 0
		for i := 0; i < r; i++ {
			if a := math.Abs(m.At(i, j)); a > maxAbs {
				maxAbs = a
				pivot = i
			}
		}
		if m.At(pivot, j) < 0 {
			for i := 0; i < r; i++ {
				m.Set(i, j, -m.At(i, j))
			}
		}
	}
}

// SymFromDense builds a SymDense from a numerically almost-symmetric dense
// matrix by averaging m and its transpose.
func SymFromDense(m *mat.Dense) *mat.SymDense {
	n, c := m.Dims()
	if n != c {
		panic("matutil: matrix is not square")
	}
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}
	return s
}
