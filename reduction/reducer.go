package reduction

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/preprocess"
)

var (
	// ErrNotFitted is returned when Transform runs before Fit.
	ErrNotFitted = errors.New("reducer not fitted")

	// ErrNoProjection is returned by methods that compute an embedding
	// without a linear projection, so out-of-sample mapping is undefined.
	ErrNoProjection = errors.New("method has no out-of-sample projection")
)

// Reducer is the uniform calling convention every method follows.
type Reducer interface {
	// Method returns the method's short name (e.g. "pca").
	Method() string

	// Fit learns the method's parameters from an n x p data matrix.
	Fit(x *mat.Dense) error

	// Transform maps the rows of x into the embedded space.
	Transform(x *mat.Dense) (*mat.Dense, error)

	// FitTransform fits on x and returns its embedding.
	FitTransform(x *mat.Dense) (*mat.Dense, error)

	// OutputDim returns the target dimension d.
	OutputDim() int

	// IsFitted reports whether Fit has completed.
	IsFitted() bool
}

// Projector is implemented by fitted methods that expose a linear
// out-of-sample map (preprocessing transform + projection basis).
type Projector interface {
	FittedTransform() *preprocess.Transform
	ProjectionBasis() *eigen.Basis
}

// Embedder is implemented by fitted methods that hold the training
// embedding directly.
type Embedder interface {
	Embedding() *mat.Dense
}
