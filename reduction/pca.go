package reduction

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/preprocess"
)

// PCA implements principal component analysis: center (optionally scale)
// the data and project onto the top-d eigenvectors of the covariance
// matrix.
type PCA struct {
	dim   int
	scale bool

	transform *preprocess.Transform
	basis     *eigen.Basis
}

// PCAOption configures a PCA instance.
type PCAOption func(*PCA)

// WithScale standardizes columns to unit variance before the
// eigendecomposition (correlation-matrix PCA).
func WithScale() PCAOption {
	return func(p *PCA) {
		p.scale = true
	}
}

// NewPCA creates a PCA reducer targeting dim output dimensions.
func NewPCA(dim int, opts ...PCAOption) *PCA {
	p := &PCA{dim: dim}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Method returns "pca".
func (p *PCA) Method() string { return "pca" }

// Fit learns the centering (and optional scaling) transform and the
// projection basis.
func (p *PCA) Fit(x *mat.Dense) error {
	_, err := p.fit(x)
	return err
}

// FitTransform fits on x and returns its embedding.
func (p *PCA) FitTransform(x *mat.Dense) (*mat.Dense, error) {
	px, err := p.fit(x)
	if err != nil {
		return nil, err
	}
	return p.basis.Project(px)
}

func (p *PCA) fit(x *mat.Dense) (*mat.Dense, error) {
	mode := preprocess.Center
	if p.scale {
		mode = preprocess.CenterScale
	}
	px, t, err := preprocess.Fit(x, mode)
	if err != nil {
		return nil, err
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, px, nil)

	_, dims := px.Dims()
	identity := mat.NewSymDense(dims, nil)
	for i := 0; i < dims; i++ {
		identity.SetSym(i, i, 1)
	}

	basis, err := eigen.Solve(&cov, identity, p.dim, eigen.Maximize)
	if err != nil {
		return nil, err
	}

	p.transform = t
	p.basis = basis
	return px, nil
}

// Transform maps rows of x (out-of-sample or not) into the embedded space.
func (p *PCA) Transform(x *mat.Dense) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, ErrNotFitted
	}
	px, err := p.transform.ApplyMatrix(x)
	if err != nil {
		return nil, err
	}
	return p.basis.Project(px)
}

// OutputDim returns the target dimension.
func (p *PCA) OutputDim() int { return p.dim }

// IsFitted reports whether Fit has completed.
func (p *PCA) IsFitted() bool { return p.basis != nil }

// ExplainedVariance returns the eigenvalues of the selected components.
func (p *PCA) ExplainedVariance() []float64 {
	if p.basis == nil {
		return nil
	}
	return p.basis.Values()
}

// FittedTransform implements Projector.
func (p *PCA) FittedTransform() *preprocess.Transform { return p.transform }

// ProjectionBasis implements Projector.
func (p *PCA) ProjectionBasis() *eigen.Basis { return p.basis }
