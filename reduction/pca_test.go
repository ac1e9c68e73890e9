package reduction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/testutil"
)

// stretched returns data whose first column has much larger variance than
// the rest, so the leading principal axis is known.
func stretched(rng *testutil.RNG, n, p int) *mat.Dense {
	x := testutil.RandomMatrix(rng, n, p)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 5*x.At(i, 0))
	}
	return x
}

func TestPCA_LeadingComponent(t *testing.T) {
	rng := testutil.NewRNG(51)
	x := stretched(rng, 200, 4)

	pca := NewPCA(1)
	emb, err := pca.FitTransform(x)
	require.NoError(t, err)

	n, d := emb.Dims()
	assert.Equal(t, 200, n)
	assert.Equal(t, 1, d)

	basis := pca.ProjectionBasis()
	require.NotNil(t, basis)
	vecs := basis.Vectors()
	assert.Greater(t, math.Abs(vecs.At(0, 0)), 0.95, "leading axis must align with the high-variance column")
}

func TestPCA_ExplainedVarianceDescending(t *testing.T) {
	rng := testutil.NewRNG(52)
	x := stretched(rng, 150, 5)

	pca := NewPCA(5)
	require.NoError(t, pca.Fit(x))

	vals := pca.ExplainedVariance()
	require.Len(t, vals, 5)
	for k := 1; k < len(vals); k++ {
		assert.GreaterOrEqual(t, vals[k-1], vals[k])
	}
	assert.Greater(t, vals[0], vals[1]*5, "stretched column dominates the spectrum")
}

func TestPCA_TransformMatchesFitTransform(t *testing.T) {
	rng := testutil.NewRNG(53)
	x := stretched(rng, 80, 3)

	pca := NewPCA(2)
	emb, err := pca.FitTransform(x)
	require.NoError(t, err)

	again, err := pca.Transform(x)
	require.NoError(t, err)

	n, d := emb.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			assert.InDelta(t, emb.At(i, j), again.At(i, j), 1e-9, "(%d,%d)", i, j)
		}
	}
}

func TestPCA_OutOfSample(t *testing.T) {
	rng := testutil.NewRNG(54)
	train := stretched(rng, 100, 3)
	test := stretched(rng, 10, 3)

	pca := NewPCA(2)
	require.NoError(t, pca.Fit(train))

	out, err := pca.Transform(test)
	require.NoError(t, err)
	n, d := out.Dims()
	assert.Equal(t, 10, n)
	assert.Equal(t, 2, d)
}

func TestPCA_WithScale(t *testing.T) {
	rng := testutil.NewRNG(55)
	x := stretched(rng, 100, 3)

	pca := NewPCA(3, WithScale())
	require.NoError(t, pca.Fit(x))

	// Correlation-matrix PCA: eigenvalues sum to the number of columns.
	sum := 0.0
	for _, v := range pca.ExplainedVariance() {
		sum += v
	}
	assert.InDelta(t, 3, sum, 1e-6)
}

func TestPCA_NotFitted(t *testing.T) {
	pca := NewPCA(2)
	assert.False(t, pca.IsFitted())
	assert.Equal(t, "pca", pca.Method())
	assert.Equal(t, 2, pca.OutputDim())
	assert.Nil(t, pca.ExplainedVariance())

	_, err := pca.Transform(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestPCA_ImplementsInterfaces(t *testing.T) {
	var _ Reducer = (*PCA)(nil)
	var _ Projector = (*PCA)(nil)
}
