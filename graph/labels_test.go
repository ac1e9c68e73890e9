package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassIndex_Lookups(t *testing.T) {
	ix := NewClassIndex([]int{2, 0, 2, 1, 0, 2})

	assert.Equal(t, 6, ix.Len())
	assert.Equal(t, []int{0, 1, 2}, ix.Labels())
	assert.Equal(t, 2, ix.Count(0))
	assert.Equal(t, 1, ix.Count(1))
	assert.Equal(t, 3, ix.Count(2))
	assert.Zero(t, ix.Count(99))

	assert.True(t, ix.SameClass(0, 2))
	assert.True(t, ix.SameClass(1, 4))
	assert.False(t, ix.SameClass(0, 1))
	assert.True(t, ix.SameClass(3, 3))

	assert.Equal(t, []uint32{0, 2, 5}, ix.Members(2))
	assert.Nil(t, ix.Members(99))
}

func TestClassIndex_Validate(t *testing.T) {
	require.NoError(t, NewClassIndex([]int{0, 0, 1, 1}).Validate())

	err := NewClassIndex([]int{0, 0, 1, 2, 2}).Validate()
	var dc *DegenerateClassError
	require.ErrorAs(t, err, &dc)
	assert.Equal(t, 1, dc.Label)
	assert.Equal(t, 1, dc.Count)
	assert.Contains(t, dc.Error(), "class 1")
}
