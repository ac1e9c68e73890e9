package preprocess

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/dimred/internal/matutil"
)

// Mode selects the preprocessing transform. The set is closed: callers pick a
// constant at the API boundary instead of dispatching on strings.
type Mode uint8

const (
	// None leaves the matrix untouched.
	None Mode = iota
	// Center subtracts the per-column mean.
	Center
	// Scale divides each column by its sample standard deviation.
	Scale
	// CenterScale composes Center then Scale.
	CenterScale
	// Decorrelate centers, then rotates by the covariance eigenvectors so
	// output columns are uncorrelated (variances stay untouched).
	Decorrelate
	// Whiten decorrelates and rescales each rotated column to unit variance.
	Whiten
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Center:
		return "center"
	case Scale:
		return "scale"
	case CenterScale:
		return "center+scale"
	case Decorrelate:
		return "decorrelate"
	case Whiten:
		return "whiten"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

func (m Mode) valid() bool { return m <= Whiten }

// DefaultEigenvalueTolerance is the threshold below which a covariance
// eigenvalue is treated as numerically zero during whitening.
const DefaultEigenvalueTolerance = 1e-12

type options struct {
	ridge  float64
	eigTol float64
}

// Option configures Fit behavior.
type Option func(*options)

// WithRidge adds eps to every covariance eigenvalue before whitening,
// turning a RankDeficientError into a regularized (Tikhonov) transform.
// eps <= 0 disables regularization.
func WithRidge(eps float64) Option {
	return func(o *options) {
		o.ridge = eps
	}
}

// WithEigenvalueTolerance overrides DefaultEigenvalueTolerance.
func WithEigenvalueTolerance(tol float64) Option {
	return func(o *options) {
		o.eigTol = tol
	}
}

// Fit computes the preprocessed matrix and the Transform record that replays
// the identical affine map on out-of-sample rows.
//
// The input must be an n x p matrix with n >= 2, p >= 1 and finite entries;
// it is never mutated.
func Fit(x *mat.Dense, mode Mode, opts ...Option) (*mat.Dense, *Transform, error) {
	o := options{eigTol: DefaultEigenvalueTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if !mode.valid() {
		return nil, nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidInput, uint8(mode))
	}
	if err := checkMatrix(x); err != nil {
		return nil, nil, err
	}

	_, p := x.Dims()
	t := &Transform{mode: mode, dim: p}

	switch mode {
	case None:
		// Identity map; the record still pins the expected width.
	case Center:
		t.mean = colMeans(x)
	case Scale:
		sd, err := colStdDevs(x)
		if err != nil {
			return nil, nil, err
		}
		t.scale = sd
	case CenterScale:
		sd, err := colStdDevs(x)
		if err != nil {
			return nil, nil, err
		}
		t.mean = colMeans(x)
		t.scale = sd
	case Decorrelate, Whiten:
		t.mean = colMeans(x)
		proj, err := rotationFor(x, mode, o)
		if err != nil {
			return nil, nil, err
		}
		t.proj = proj
	}

	px, err := t.ApplyMatrix(x)
	if err != nil {
		return nil, nil, err
	}
	return px, t, nil
}

func checkMatrix(x *mat.Dense) error {
	if x == nil {
		return fmt.Errorf("%w: nil matrix", ErrInvalidInput)
	}
	n, p := x.Dims()
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 rows, got %d", ErrInvalidInput, n)
	}
	if p < 1 {
		return fmt.Errorf("%w: need at least 1 column, got %d", ErrInvalidInput, p)
	}
	if matutil.HasNonFinite(x) {
		return fmt.Errorf("%w: matrix contains NaN or Inf", ErrInvalidInput)
	}
	return nil
}

func colMeans(x *mat.Dense) []float64 {
	n, p := x.Dims()
	means := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		means[j] = stat.Mean(col, nil)
	}
	return means
}

func colStdDevs(x *mat.Dense) ([]float64, error) {
	n, p := x.Dims()
	sds := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		sd := stat.StdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			return nil, &ZeroVarianceError{Column: j}
		}
		sds[j] = sd
	}
	return sds, nil
}

// rotationFor builds the p x p map applied after centering: the covariance
// eigenvector rotation for Decorrelate, additionally scaled by 1/sqrt(lambda)
// per component for Whiten.
func rotationFor(x *mat.Dense, mode Mode, o options) (*mat.Dense, error) {
	_, p := x.Dims()

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)

	var es mat.EigenSym
	if ok := es.Factorize(&cov, true); !ok {
		return nil, fmt.Errorf("%w: covariance eigendecomposition failed", ErrInvalidInput)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// Reorder columns by descending eigenvalue; gonum returns ascending.
	proj := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		src := p - 1 - j
		for i := 0; i < p; i++ {
			proj.Set(i, j, vecs.At(i, src))
		}
	}
	matutil.SignNormalizeColumns(proj)

	if mode == Whiten {
		for j := 0; j < p; j++ {
			lambda := vals[p-1-j] + o.ridge
			if lambda <= o.eigTol {
				return nil, &RankDeficientError{Component: j, Eigenvalue: lambda}
			}
			inv := 1 / math.Sqrt(lambda)
			for i := 0; i < p; i++ {
				proj.Set(i, j, proj.At(i, j)*inv)
			}
		}
	}
	return proj, nil
}
