package graph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/internal/matutil"
)

type options struct {
	normalized bool
}

// Option configures Build behavior.
type Option func(*options)

// WithNormalized switches the Laplacian to the symmetric normalized variant
// I - D^{-1/2} W D^{-1/2}. Zero-degree rows keep a unit diagonal.
func WithNormalized() Option {
	return func(o *options) {
		o.normalized = true
	}
}

// Build computes the weighted adjacency matrix W and graph Laplacian L from
// an n x n pairwise distance matrix under the given rule.
//
// W is symmetric with non-negative entries and a zero diagonal. L is
// positive semi-definite; its row sums are zero for the unnormalized
// variant. The input matrix is never mutated.
func Build(dist *mat.Dense, rule Rule, opts ...Option) (w, l *mat.SymDense, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkDistances(dist); err != nil {
		return nil, nil, err
	}
	n, _ := dist.Dims()
	if rule == nil {
		return nil, nil, fmt.Errorf("%w: nil rule", ErrInvalidInput)
	}
	if err := rule.validate(n); err != nil {
		return nil, nil, err
	}

	raw := rule.weights(dist)

	// Directed rules (KNN) are symmetrized with the max combination:
	// an edge survives if either endpoint selected it.
	w = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w.SetSym(i, j, math.Max(raw.At(i, j), raw.At(j, i)))
		}
	}

	l = laplacian(w, o.normalized)
	return w, l, nil
}

// Degrees returns the row sums of a symmetric weight matrix.
func Degrees(w *mat.SymDense) []float64 {
	n := w.SymmetricDim()
	deg := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += w.At(i, j)
		}
		deg[i] = sum
	}
	return deg
}

// DegreeMatrix returns diag(Degrees(w)) as a symmetric matrix, the RHS used
// by Laplacian-style generalized eigenproblems.
func DegreeMatrix(w *mat.SymDense) *mat.SymDense {
	deg := Degrees(w)
	n := len(deg)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		d.SetSym(i, i, deg[i])
	}
	return d
}

func laplacian(w *mat.SymDense, normalized bool) *mat.SymDense {
	n := w.SymmetricDim()
	deg := Degrees(w)
	l := mat.NewSymDense(n, nil)

	if !normalized {
		for i := 0; i < n; i++ {
			l.SetSym(i, i, deg[i])
			for j := i + 1; j < n; j++ {
				l.SetSym(i, j, -w.At(i, j))
			}
		}
		return l
	}

	invSqrt := make([]float64, n)
	for i, d := range deg {
		if d > 0 {
			invSqrt[i] = 1 / math.Sqrt(d)
		}
	}
	for i := 0; i < n; i++ {
		l.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			l.SetSym(i, j, -w.At(i, j)*invSqrt[i]*invSqrt[j])
		}
	}
	return l
}

func checkDistances(dist *mat.Dense) error {
	if dist == nil {
		return fmt.Errorf("%w: nil distance matrix", ErrInvalidInput)
	}
	n, c := dist.Dims()
	if n != c {
		return fmt.Errorf("%w: distance matrix must be square, got %d x %d", ErrInvalidInput, n, c)
	}
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 rows, got %d", ErrInvalidInput, n)
	}
	if matutil.HasNonFinite(dist) {
		return fmt.Errorf("%w: distance matrix contains NaN or Inf", ErrInvalidInput)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if dist.At(i, j) < 0 {
				return fmt.Errorf("%w: negative distance at (%d,%d)", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}
