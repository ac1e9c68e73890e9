package reduction

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/graph"
	"github.com/hupe1980/dimred/preprocess"
)

// LaplacianEigenmaps embeds the training rows by the bottom eigenvectors of
// the generalized problem L f = lambda D f on a neighborhood graph, skipping
// the trivial constant solution.
//
// The method solves for the embedding directly; there is no linear
// projection, so Transform on new rows fails with ErrNoProjection.
type LaplacianEigenmaps struct {
	dim       int
	neighbors int
	bandwidth float64
	ridge     float64

	embedding *mat.Dense
}

// EigenmapsOption configures a LaplacianEigenmaps instance.
type EigenmapsOption func(*LaplacianEigenmaps)

// WithEigenmapsNeighbors sets the k of the k-nearest-neighbor graph
// (default 5).
func WithEigenmapsNeighbors(k int) EigenmapsOption {
	return func(e *LaplacianEigenmaps) {
		e.neighbors = k
	}
}

// WithEigenmapsBandwidth sets the heat-kernel bandwidth. The default 0
// picks the mean pairwise distance at Fit time.
func WithEigenmapsBandwidth(t float64) EigenmapsOption {
	return func(e *LaplacianEigenmaps) {
		e.bandwidth = t
	}
}

// NewLaplacianEigenmaps creates a Laplacian Eigenmaps reducer targeting dim
// output dimensions.
func NewLaplacianEigenmaps(dim int, opts ...EigenmapsOption) *LaplacianEigenmaps {
	e := &LaplacianEigenmaps{dim: dim, neighbors: 5, ridge: DefaultLPPRidge}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Method returns "laplacian-eigenmaps".
func (e *LaplacianEigenmaps) Method() string { return "laplacian-eigenmaps" }

// Fit computes the training embedding.
func (e *LaplacianEigenmaps) Fit(x *mat.Dense) error {
	_, err := e.FitTransform(x)
	return err
}

// FitTransform fits on x and returns the training embedding.
func (e *LaplacianEigenmaps) FitTransform(x *mat.Dense) (*mat.Dense, error) {
	px, _, err := preprocess.Fit(x, preprocess.None)
	if err != nil {
		return nil, err
	}

	dist := graph.PairwiseDistances(px)
	bandwidth := e.bandwidth
	if bandwidth == 0 {
		bandwidth = meanOffDiagonal(dist)
	}

	w, lap, err := graph.Build(dist, graph.KNN{K: e.neighbors, Bandwidth: bandwidth})
	if err != nil {
		return nil, err
	}

	basis, err := eigen.Solve(lap, graph.DegreeMatrix(w), e.dim, eigen.Minimize,
		eigen.WithSkipTrivial(), eigen.WithRidge(e.ridge))
	if err != nil {
		return nil, err
	}

	e.embedding = basis.Vectors()
	return mat.DenseCopyOf(e.embedding), nil
}

// Transform returns ErrNoProjection for out-of-sample rows; the fitted
// embedding is available via Embedding.
func (e *LaplacianEigenmaps) Transform(*mat.Dense) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, ErrNotFitted
	}
	return nil, ErrNoProjection
}

// OutputDim returns the target dimension.
func (e *LaplacianEigenmaps) OutputDim() int { return e.dim }

// IsFitted reports whether Fit has completed.
func (e *LaplacianEigenmaps) IsFitted() bool { return e.embedding != nil }

// Embedding implements Embedder.
func (e *LaplacianEigenmaps) Embedding() *mat.Dense {
	if e.embedding == nil {
		return nil
	}
	return mat.DenseCopyOf(e.embedding)
}
