package dimred

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/graph"
	"github.com/hupe1980/dimred/preprocess"
)

// Preprocess computes the transformed matrix and the Transform record that
// replays the identical affine map on out-of-sample rows. See the
// preprocess package for the mode and option catalog.
func Preprocess(x *mat.Dense, mode preprocess.Mode, opts ...preprocess.Option) (*mat.Dense, *preprocess.Transform, error) {
	px, t, err := preprocess.Fit(x, mode, opts...)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return px, t, nil
}

// ApplyTransform maps a single out-of-sample row through a fitted
// transform.
func ApplyTransform(t *preprocess.Transform, row []float64) ([]float64, error) {
	if t == nil {
		return nil, ErrNotFitted
	}
	out, err := t.Apply(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// SolveGeneralizedEigen solves LHS*v = lambda*RHS*v and returns the
// selected p x d basis. See the eigen package for selection and
// regularization semantics.
func SolveGeneralizedEigen(lhs, rhs *mat.SymDense, d int, sense eigen.Sense, opts ...eigen.Option) (*eigen.Basis, error) {
	basis, err := eigen.Solve(lhs, rhs, d, sense, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	return basis, nil
}

// BuildGraph computes the weighted adjacency matrix and graph Laplacian
// from a pairwise distance matrix under the given rule. See the graph
// package for the rule catalog.
func BuildGraph(dist *mat.Dense, rule graph.Rule, opts ...graph.Option) (w, l *mat.SymDense, err error) {
	w, l, err = graph.Build(dist, rule, opts...)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return w, l, nil
}
