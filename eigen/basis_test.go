package eigen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/testutil"
)

func fittedBasis(t *testing.T, seed int64, p, d int) *Basis {
	t.Helper()
	rng := testutil.NewRNG(seed)
	basis, err := Solve(randomSym(rng, p), testutil.RandomSPD(rng, p), d, Maximize)
	require.NoError(t, err)
	return basis
}

func TestBasis_ProjectShapes(t *testing.T) {
	basis := fittedBasis(t, 31, 5, 2)

	rng := testutil.NewRNG(32)
	x := testutil.RandomMatrix(rng, 8, 5)

	out, err := basis.Project(x)
	require.NoError(t, err)
	n, d := out.Dims()
	assert.Equal(t, 8, n)
	assert.Equal(t, 2, d)

	_, err = basis.Project(testutil.RandomMatrix(rng, 8, 4))
	var id *InvalidDimensionError
	assert.ErrorAs(t, err, &id)
}

func TestBasis_ProjectRowMatchesProject(t *testing.T) {
	basis := fittedBasis(t, 33, 6, 3)

	rng := testutil.NewRNG(34)
	x := testutil.RandomMatrix(rng, 4, 6)

	out, err := basis.Project(x)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		row, err := basis.ProjectRow(mat.Row(nil, i, x))
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			assert.InDelta(t, out.At(i, j), row[j], 1e-12, "row %d col %d", i, j)
		}
	}

	_, err = basis.ProjectRow(make([]float64, 5))
	var id *InvalidDimensionError
	assert.ErrorAs(t, err, &id)
}

func TestBasis_VectorsReturnsCopy(t *testing.T) {
	basis := fittedBasis(t, 35, 4, 2)

	vecs := basis.Vectors()
	vecs.Set(0, 0, 42)
	assert.NotEqual(t, 42.0, basis.vectors.At(0, 0))

	vals := basis.Values()
	vals[0] = 42
	assert.NotEqual(t, 42.0, basis.values[0])
}

func TestBasis_BinaryRoundTrip(t *testing.T) {
	basis := fittedBasis(t, 36, 5, 3)

	data, err := basis.MarshalBinary()
	require.NoError(t, err)

	var got Basis
	require.NoError(t, got.UnmarshalBinary(data))

	assert.True(t, mat.Equal(basis.vectors, got.vectors))
	assert.Equal(t, basis.values, got.values)
}

func TestBasis_UnmarshalErrors(t *testing.T) {
	basis := fittedBasis(t, 37, 4, 2)
	data, err := basis.MarshalBinary()
	require.NoError(t, err)

	var b Basis
	assert.Error(t, b.UnmarshalBinary(data[:4]), "short header")
	assert.Error(t, b.UnmarshalBinary(data[:len(data)-8]), "truncated payload")

	zero := make([]byte, basisHeaderSize)
	assert.Error(t, b.UnmarshalBinary(zero), "zero dimensions")
}
