package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/dimred/testutil"
)

func TestPairwiseDistances_KnownValues(t *testing.T) {
	// 3-4-5 triangle.
	x := mat.NewDense(3, 2, []float64{
		0, 0,
		3, 0,
		3, 4,
	})

	d := PairwiseDistances(x)

	assert.InDelta(t, 3, d.At(0, 1), 1e-12)
	assert.InDelta(t, 4, d.At(1, 2), 1e-12)
	assert.InDelta(t, 5, d.At(0, 2), 1e-12)
	for i := 0; i < 3; i++ {
		assert.Zero(t, d.At(i, i))
	}
}

func TestPairwiseSquaredDistances_Symmetric(t *testing.T) {
	rng := testutil.NewRNG(41)
	x := testutil.RandomMatrix(rng, 20, 5)

	d := PairwiseSquaredDistances(x)

	n, c := d.Dims()
	require.Equal(t, 20, n)
	require.Equal(t, 20, c)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			assert.Equal(t, d.At(i, j), d.At(j, i), "(%d,%d)", i, j)
			assert.GreaterOrEqual(t, d.At(i, j), 0.0)
		}
	}
}

func TestPairwiseDistances_MatchesNaive(t *testing.T) {
	rng := testutil.NewRNG(42)
	x := testutil.RandomMatrix(rng, 12, 4)

	d := PairwiseDistances(x)

	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				diff := x.At(i, k) - x.At(j, k)
				sum += diff * diff
			}
			assert.InDelta(t, math.Sqrt(sum), d.At(i, j), 1e-12, "(%d,%d)", i, j)
		}
	}
}
