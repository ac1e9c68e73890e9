package dimred

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/blobstore"
	"github.com/hupe1980/dimred/persistence"
	"github.com/hupe1980/dimred/reduction"
	"github.com/hupe1980/dimred/testutil"
)

func fitPCAModel(t *testing.T, opts ...Option) (*Model, *mat.Dense) {
	t.Helper()
	rng := testutil.NewRNG(101)
	x, _ := testutil.GaussianClusters(rng, 50, 4, 2, 0.5)

	model, err := Fit(context.Background(), reduction.NewPCA(2), x, opts...)
	require.NoError(t, err)
	return model, x
}

func TestFit_PCAModel(t *testing.T) {
	model, x := fitPCAModel(t)

	assert.Equal(t, "pca", model.Method)
	require.NotNil(t, model.Transform)
	require.NotNil(t, model.Basis)
	require.NotNil(t, model.Embedding)

	n, d := model.Embedding.Dims()
	assert.Equal(t, 50, n)
	assert.Equal(t, 2, d)

	// Predict on a training row reproduces its embedding row.
	for i := 0; i < 5; i++ {
		out, err := model.Predict(mat.Row(nil, i, x))
		require.NoError(t, err)
		require.Len(t, out, 2)
		for j := 0; j < 2; j++ {
			assert.InDelta(t, model.Embedding.At(i, j), out[j], 1e-9, "row %d col %d", i, j)
		}
	}
}

func TestFit_CollectsMetrics(t *testing.T) {
	var metrics BasicMetricsCollector
	model, x := fitPCAModel(t, WithMetrics(&metrics))

	_, err := model.Predict(mat.Row(nil, 0, x))
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.FitCount.Load())
	assert.Zero(t, metrics.FitErrors.Load())
	assert.Equal(t, int64(1), metrics.PredictCount.Load())
	assert.Equal(t, int64(1), metrics.PredictRows.Load())
}

func TestFit_PropagatesReducerError(t *testing.T) {
	_, err := Fit(context.Background(), reduction.NewPCA(2), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModel_PredictBatch(t *testing.T) {
	model, x := fitPCAModel(t)

	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}

	out, err := model.PredictBatch(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for i := range out {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, model.Embedding.At(i, j), out[i][j], 1e-9, "row %d col %d", i, j)
		}
	}
}

func TestModel_PredictBatchRowError(t *testing.T) {
	model, x := fitPCAModel(t)

	rows := [][]float64{
		mat.Row(nil, 0, x),
		{1, 2}, // wrong width
	}
	_, err := model.PredictBatch(context.Background(), rows)
	var dm *DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Contains(t, err.Error(), "row 1")
}

func TestModel_EmbeddingOnlyNoProjection(t *testing.T) {
	rng := testutil.NewRNG(102)
	x, _ := testutil.GaussianClusters(rng, 40, 4, 2, 0.5)

	model, err := Fit(context.Background(), reduction.NewLaplacianEigenmaps(2), x)
	require.NoError(t, err)

	assert.Nil(t, model.Basis)
	require.NotNil(t, model.Embedding)

	_, err = model.Predict(mat.Row(nil, 0, x))
	assert.ErrorIs(t, err, ErrNoProjection)
}

func TestModel_SaveLoadRoundTrip(t *testing.T) {
	model, x := fitPCAModel(t)

	var buf bytes.Buffer
	require.NoError(t, model.Save(&buf, persistence.WithCompression(persistence.CompressionZSTD)))

	loaded, err := LoadModel(&buf)
	require.NoError(t, err)

	assert.Equal(t, model.Method, loaded.Method)
	assert.True(t, mat.Equal(model.Embedding, loaded.Embedding))

	row := mat.Row(nil, 3, x)
	want, err := model.Predict(row)
	require.NoError(t, err)
	got, err := loaded.Predict(row)
	require.NoError(t, err)
	assert.Equal(t, want, got, "loaded model must predict identically")
}

func TestModel_SaveToBlobStore(t *testing.T) {
	ctx := context.Background()
	model, x := fitPCAModel(t)
	store := blobstore.NewMemoryStore()

	require.NoError(t, model.SaveTo(ctx, store, "models/pca.snap"))

	names, err := store.List(ctx, "models/")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/pca.snap"}, names)

	loaded, err := LoadModelFrom(ctx, store, "models/pca.snap")
	require.NoError(t, err)

	row := mat.Row(nil, 7, x)
	want, err := model.Predict(row)
	require.NoError(t, err)
	got, err := loaded.Predict(row)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = LoadModelFrom(ctx, store, "models/missing.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
