package matutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestHasNonFinite(t *testing.T) {
	assert.False(t, HasNonFinite(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	assert.True(t, HasNonFinite(mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})))
	assert.True(t, HasNonFinite(mat.NewDense(2, 2, []float64{1, 2, math.Inf(-1), 4})))
}

func TestSliceHasNonFinite(t *testing.T) {
	assert.False(t, SliceHasNonFinite([]float64{1, 2, 3}))
	assert.True(t, SliceHasNonFinite([]float64{1, math.NaN()}))
	assert.True(t, SliceHasNonFinite([]float64{math.Inf(1)}))
}

func TestSignNormalizeColumns(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 2,
		-5, 1,
		2, -1,
	})
	SignNormalizeColumns(m)

	// Column 0 pivot is -5 at row 1: flipped.
	assert.Equal(t, -1.0, m.At(0, 0))
	assert.Equal(t, 5.0, m.At(1, 0))
	assert.Equal(t, -2.0, m.At(2, 0))

	// Column 1 pivot is 2 at row 0: untouched.
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, 1.0, m.At(1, 1))
	assert.Equal(t, -1.0, m.At(2, 1))
}

func TestSymFromDense(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		1, 2,
		4, 3,
	})
	s := SymFromDense(m)
	assert.Equal(t, 1.0, s.At(0, 0))
	assert.Equal(t, 3.0, s.At(1, 1))
	assert.Equal(t, 3.0, s.At(0, 1))
	assert.Equal(t, 3.0, s.At(1, 0))

	assert.Panics(t, func() { SymFromDense(mat.NewDense(2, 3, nil)) })
}
