package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	storagetest.Run(t, store)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Update(context.Background(), "products", func([]byte, bool) ([]byte, error) {
		return []byte(`[]`), nil
	}))

	data, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files must not be left behind")
	}
}

func TestFileStoreReadsCorruptDocumentVerbatim(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reviews.json"), []byte("{not json"), 0o644))

	data, err := store.Get(context.Background(), "reviews")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
