package reduction

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/graph"
	"github.com/hupe1980/dimred/preprocess"
)

// DefaultLPPRidge regularizes the right-hand scatter matrix X'DX, which is
// rank-deficient whenever n < p or features are collinear.
const DefaultLPPRidge = 1e-9

// LPP implements Locality Preserving Projections: build a neighborhood
// graph on the centered data, then solve the generalized eigenproblem
// X'LX v = lambda X'DX v for the smoothest projection directions.
//
// With labels supplied the neighborhood graph is label-gated instead of
// k-nearest-neighbor, giving the supervised variant.
type LPP struct {
	dim       int
	neighbors int
	bandwidth float64
	ridge     float64

	labels      []int
	intraWeight float64
	interWeight float64

	transform *preprocess.Transform
	basis     *eigen.Basis
}

// LPPOption configures an LPP instance.
type LPPOption func(*LPP)

// WithNeighbors sets the k of the k-nearest-neighbor graph (default 5).
// Ignored when labels are supplied.
func WithNeighbors(k int) LPPOption {
	return func(l *LPP) {
		l.neighbors = k
	}
}

// WithBandwidth sets the heat-kernel bandwidth. The default 0 picks the
// mean pairwise distance of the centered data at Fit time.
func WithBandwidth(t float64) LPPOption {
	return func(l *LPP) {
		l.bandwidth = t
	}
}

// WithRidge overrides DefaultLPPRidge.
func WithRidge(eps float64) LPPOption {
	return func(l *LPP) {
		l.ridge = eps
	}
}

// WithLabels switches to the supervised, label-gated graph. Same-class
// pairs are scaled by intra, cross-class pairs by inter.
func WithLabels(labels []int, intra, inter float64) LPPOption {
	return func(l *LPP) {
		l.labels = labels
		l.intraWeight = intra
		l.interWeight = inter
	}
}

// NewLPP creates an LPP reducer targeting dim output dimensions.
func NewLPP(dim int, opts ...LPPOption) *LPP {
	l := &LPP{dim: dim, neighbors: 5, ridge: DefaultLPPRidge}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Method returns "lpp".
func (l *LPP) Method() string { return "lpp" }

// Fit learns the centering transform and the projection basis.
func (l *LPP) Fit(x *mat.Dense) error {
	_, err := l.fit(x)
	return err
}

// FitTransform fits on x and returns its embedding.
func (l *LPP) FitTransform(x *mat.Dense) (*mat.Dense, error) {
	px, err := l.fit(x)
	if err != nil {
		return nil, err
	}
	return l.basis.Project(px)
}

func (l *LPP) fit(x *mat.Dense) (*mat.Dense, error) {
	px, t, err := preprocess.Fit(x, preprocess.Center)
	if err != nil {
		return nil, err
	}

	dist := graph.PairwiseDistances(px)
	bandwidth := l.bandwidth
	if bandwidth == 0 {
		bandwidth = meanOffDiagonal(dist)
	}

	var rule graph.Rule
	if l.labels != nil {
		rule = graph.LabelGated{
			Labels:      l.labels,
			Bandwidth:   bandwidth,
			IntraWeight: l.intraWeight,
			InterWeight: l.interWeight,
		}
	} else {
		rule = graph.KNN{K: l.neighbors, Bandwidth: bandwidth}
	}

	w, lap, err := graph.Build(dist, rule)
	if err != nil {
		return nil, err
	}

	lhs := scatter(px, lap)
	rhs := scatter(px, graph.DegreeMatrix(w))

	basis, err := eigen.Solve(lhs, rhs, l.dim, eigen.Minimize, eigen.WithRidge(l.ridge))
	if err != nil {
		return nil, err
	}

	l.transform = t
	l.basis = basis
	return px, nil
}

// Transform maps rows of x (out-of-sample or not) into the embedded space.
func (l *LPP) Transform(x *mat.Dense) (*mat.Dense, error) {
	if !l.IsFitted() {
		return nil, ErrNotFitted
	}
	px, err := l.transform.ApplyMatrix(x)
	if err != nil {
		return nil, err
	}
	return l.basis.Project(px)
}

// OutputDim returns the target dimension.
func (l *LPP) OutputDim() int { return l.dim }

// IsFitted reports whether Fit has completed.
func (l *LPP) IsFitted() bool { return l.basis != nil }

// FittedTransform implements Projector.
func (l *LPP) FittedTransform() *preprocess.Transform { return l.transform }

// ProjectionBasis implements Projector.
func (l *LPP) ProjectionBasis() *eigen.Basis { return l.basis }

// scatter computes X' * M * X as a symmetric matrix.
func scatter(x *mat.Dense, m *mat.SymDense) *mat.SymDense {
	var mx mat.Dense
	mx.Mul(m, x)
	var s mat.Dense
	s.Mul(x.T(), &mx)
	n, _ := s.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(s.At(i, j)+s.At(j, i)))
		}
	}
	return out
}

func meanOffDiagonal(dist *mat.Dense) float64 {
	n, _ := dist.Dims()
	vals := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			vals = append(vals, dist.At(i, j))
		}
	}
	return stat.Mean(vals, nil)
}
