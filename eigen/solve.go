package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/internal/matutil"
)

// Sense selects which end of the generalized spectrum forms the basis.
type Sense int

const (
	// Maximize selects the top-d eigenpairs (variance-maximizing methods).
	Maximize Sense = iota
	// Minimize selects the bottom-d eigenpairs (smoothness-minimizing,
	// Laplacian-eigenmap-style methods).
	Minimize
)

func (s Sense) String() string {
	switch s {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// DefaultTrivialTolerance is the threshold under which the smallest
// eigenvalue is considered the trivial (constant-eigenvector) solution.
const DefaultTrivialTolerance = 1e-9

// DefaultConstancyTolerance bounds the relative spread (max entry minus min
// entry) under which an eigenvector counts as numerically constant when the
// trivial pair is skipped.
const DefaultConstancyTolerance = 1e-6

type options struct {
	ridge        float64
	skipTrivial  bool
	trivialTol   float64
	constancyTol float64
}

// Option configures Solve behavior.
type Option func(*options)

// WithRidge adds eps*I to RHS when its Cholesky factorization fails,
// regularizing a singular or ill-conditioned RHS (Tikhonov style).
// eps <= 0 disables regularization.
func WithRidge(eps float64) Option {
	return func(o *options) {
		o.ridge = eps
	}
}

// WithSkipTrivial drops the eigenpair closest to zero when its eigenvector
// is numerically constant. Only meaningful with Minimize; Laplacian-based
// methods use it to discard the constant solution.
func WithSkipTrivial() Option {
	return func(o *options) {
		o.skipTrivial = true
	}
}

// WithTrivialTolerance overrides DefaultTrivialTolerance.
func WithTrivialTolerance(tol float64) Option {
	return func(o *options) {
		o.trivialTol = tol
	}
}

// WithConstancyTolerance overrides DefaultConstancyTolerance. A non-positive
// tolerance makes the constancy check fail for every vector, so no pair is
// treated as trivial.
func WithConstancyTolerance(tol float64) Option {
	return func(o *options) {
		o.constancyTol = tol
	}
}

// Solve computes the generalized eigenpairs of (lhs, rhs) and returns the
// selected p x d basis. Columns are ordered by eigenvalue rank (descending
// for Maximize, ascending for Minimize), normalized so that v'*RHS*v = 1,
// and sign-adjusted so the largest-magnitude entry of each column is
// positive. Repeated eigenvalues keep the index order of the underlying
// symmetric solver, so results are deterministic across runs.
func Solve(lhs, rhs *mat.SymDense, d int, sense Sense, opts ...Option) (*Basis, error) {
	o := options{trivialTol: DefaultTrivialTolerance, constancyTol: DefaultConstancyTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if lhs == nil || rhs == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidInput)
	}
	p := lhs.SymmetricDim()
	if rhs.SymmetricDim() != p {
		return nil, fmt.Errorf("%w: LHS is %d x %d but RHS is %d x %d",
			ErrInvalidInput, p, p, rhs.SymmetricDim(), rhs.SymmetricDim())
	}
	if matutil.HasNonFinite(lhs) || matutil.HasNonFinite(rhs) {
		return nil, fmt.Errorf("%w: matrix contains NaN or Inf", ErrInvalidInput)
	}
	if d < 1 || d > p {
		return nil, &InvalidDimensionError{D: d, P: p}
	}

	// Reduce to a standard symmetric problem via RHS = L*L'.
	var chol mat.Cholesky
	if ok := chol.Factorize(rhs); !ok {
		if o.ridge <= 0 {
			return nil, &RankDeficientError{Size: p}
		}
		ridged := mat.NewSymDense(p, nil)
		ridged.CopySym(rhs)
		for i := 0; i < p; i++ {
			ridged.SetSym(i, i, ridged.At(i, i)+o.ridge)
		}
		if ok := chol.Factorize(ridged); !ok {
			return nil, &RankDeficientError{Size: p}
		}
	}

	var l mat.TriDense
	chol.LTo(&l)

	// C = inv(L) * LHS * inv(L') computed by two triangular solves; the
	// result is symmetrized to absorb floating-point drift.
	var y mat.Dense
	if err := y.Solve(&l, lhs); err != nil {
		return nil, fmt.Errorf("reduce generalized problem: %w", err)
	}
	var ct mat.Dense
	if err := ct.Solve(&l, y.T()); err != nil {
		return nil, fmt.Errorf("reduce generalized problem: %w", err)
	}
	c := matutil.SymFromDense(&ct)

	var es mat.EigenSym
	if ok := es.Factorize(c, true); !ok {
		return nil, fmt.Errorf("%w: symmetric eigendecomposition failed", ErrInvalidInput)
	}
	vals := es.Values(nil) // ascending
	var q mat.Dense
	es.VectorsTo(&q)

	// Back-transform: v = inv(L') * q. Unit-norm q gives v'*RHS*v = 1.
	var v mat.Dense
	if err := v.Solve(l.T(), &q); err != nil {
		return nil, fmt.Errorf("back-transform eigenvectors: %w", err)
	}

	idx, err := selectIndices(vals, &v, d, sense, o)
	if err != nil {
		return nil, err
	}

	basisVecs := mat.NewDense(p, d, nil)
	basisVals := make([]float64, d)
	for j, k := range idx {
		basisVals[j] = vals[k]
		for i := 0; i < p; i++ {
			basisVecs.Set(i, j, v.At(i, k))
		}
	}
	matutil.SignNormalizeColumns(basisVecs)

	return &Basis{vectors: basisVecs, values: basisVals}, nil
}

// selectIndices picks d eigenpair indices ordered by rank for the given
// sense, optionally skipping the trivial constant solution.
func selectIndices(vals []float64, v *mat.Dense, d int, sense Sense, o options) ([]int, error) {
	n := len(vals)
	idx := make([]int, 0, d)

	switch sense {
	case Maximize:
		for k := n - 1; k >= 0 && len(idx) < d; k-- {
			idx = append(idx, k)
		}
	case Minimize:
		start := 0
		if o.skipTrivial && isTrivialPair(vals[0], v, 0, o.trivialTol, o.constancyTol) {
			start = 1
		}
		for k := start; k < n && len(idx) < d; k++ {
			idx = append(idx, k)
		}
	default:
		return nil, fmt.Errorf("%w: unknown sense %d", ErrInvalidInput, int(sense))
	}

	if len(idx) < d {
		return nil, &InvalidDimensionError{D: d, P: len(idx)}
	}
	return idx, nil
}

// isTrivialPair reports whether eigenpair k is the near-zero constant
// solution of a Laplacian-style problem.
func isTrivialPair(lambda float64, v *mat.Dense, k int, lambdaTol, spreadTol float64) bool {
	if math.Abs(lambda) > lambdaTol {
		return false
	}
	p, _ := v.Dims()
	lo, hi := v.At(0, k), v.At(0, k)
	for i := 1; i < p; i++ {
		x := v.At(i, k)
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	scale := math.Max(math.Abs(lo), math.Abs(hi))
	return hi-lo <= spreadTol*(1+scale)
}
