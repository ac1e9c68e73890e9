package reduction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/graph"
	"github.com/hupe1980/dimred/testutil"
)

func TestLPP_FitTransformShapes(t *testing.T) {
	rng := testutil.NewRNG(61)
	x, _ := testutil.GaussianClusters(rng, 60, 5, 3, 0.5)

	lpp := NewLPP(2, WithNeighbors(4))
	emb, err := lpp.FitTransform(x)
	require.NoError(t, err)

	n, d := emb.Dims()
	assert.Equal(t, 60, n)
	assert.Equal(t, 2, d)
	assert.True(t, lpp.IsFitted())
	assert.NotNil(t, lpp.FittedTransform())
	assert.NotNil(t, lpp.ProjectionBasis())
}

func TestLPP_TransformMatchesFitTransform(t *testing.T) {
	rng := testutil.NewRNG(62)
	x, _ := testutil.GaussianClusters(rng, 45, 4, 3, 0.5)

	lpp := NewLPP(2, WithNeighbors(5), WithBandwidth(3))
	emb, err := lpp.FitTransform(x)
	require.NoError(t, err)

	again, err := lpp.Transform(x)
	require.NoError(t, err)

	n, d := emb.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			assert.InDelta(t, emb.At(i, j), again.At(i, j), 1e-9, "(%d,%d)", i, j)
		}
	}
}

func TestLPP_PreservesClusterLocality(t *testing.T) {
	rng := testutil.NewRNG(63)
	x, labels := testutil.GaussianClusters(rng, 60, 6, 2, 0.3)

	lpp := NewLPP(1, WithNeighbors(5))
	emb, err := lpp.FitTransform(x)
	require.NoError(t, err)

	// Average within-cluster gap must be smaller than the between-cluster
	// gap on the embedded line.
	within, wn := 0.0, 0
	between, bn := 0.0, 0
	for i := 0; i < 60; i++ {
		for j := i + 1; j < 60; j++ {
			gap := emb.At(i, 0) - emb.At(j, 0)
			if gap < 0 {
				gap = -gap
			}
			if labels[i] == labels[j] {
				within, wn = within+gap, wn+1
			} else {
				between, bn = between+gap, bn+1
			}
		}
	}
	assert.Less(t, within/float64(wn), between/float64(bn))
}

func TestLPP_Supervised(t *testing.T) {
	rng := testutil.NewRNG(64)
	x, labels := testutil.GaussianClusters(rng, 40, 4, 2, 0.5)

	lpp := NewLPP(2, WithLabels(labels, 1, 0.1))
	emb, err := lpp.FitTransform(x)
	require.NoError(t, err)

	n, d := emb.Dims()
	assert.Equal(t, 40, n)
	assert.Equal(t, 2, d)
}

func TestLPP_SupervisedDegenerateClass(t *testing.T) {
	rng := testutil.NewRNG(65)
	x := testutil.RandomMatrix(rng, 10, 3)
	labels := []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 9}

	lpp := NewLPP(2, WithLabels(labels, 1, 0.1))
	err := lpp.Fit(x)
	var dc *graph.DegenerateClassError
	require.ErrorAs(t, err, &dc)
	assert.Equal(t, 9, dc.Label)
	assert.False(t, lpp.IsFitted())
}

func TestLPP_NotFitted(t *testing.T) {
	lpp := NewLPP(2)
	assert.Equal(t, "lpp", lpp.Method())
	assert.Equal(t, 2, lpp.OutputDim())

	_, err := lpp.Transform(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestLPP_ImplementsInterfaces(t *testing.T) {
	var _ Reducer = (*LPP)(nil)
	var _ Projector = (*LPP)(nil)
}
