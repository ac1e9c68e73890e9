package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the BlobStore behavior every implementation
// must share.
func testStoreContract(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "models/a.snap", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "models/b.snap", []byte("bravo")))
	require.NoError(t, store.Put(ctx, "other/c.snap", []byte("charlie")))

	blob, err := store.Open(ctx, "models/a.snap")
	require.NoError(t, err)
	assert.Equal(t, int64(5), blob.Size())
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, []byte("alpha"), data)

	// Put replaces an existing blob.
	require.NoError(t, store.Put(ctx, "models/a.snap", []byte("alpha-2")))
	blob, err = store.Open(ctx, "models/a.snap")
	require.NoError(t, err)
	data, err = io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, []byte("alpha-2"), data)

	names, err := store.List(ctx, "models/")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/a.snap", "models/b.snap"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/a.snap", "models/b.snap", "other/c.snap"}, all)

	require.NoError(t, store.Delete(ctx, "models/a.snap"))
	_, err = store.Open(ctx, "models/a.snap")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing blob is not an error.
	require.NoError(t, store.Delete(ctx, "models/a.snap"))
}

func TestMemoryStore_Contract(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestLocalStore_Contract(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, store)
}

func TestMemoryStore_PutCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("original")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'X'

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)
	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, []byte("original"), got)
}

func TestLocalStore_NestedNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a/b/c/model.snap", []byte("deep")))

	names, err := store.List(ctx, "a/b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/c/model.snap"}, names)
}
