package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_SaveAndRemove(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base, zap.NewNop())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "uploads/hotels", "front view.jpg", []byte("payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "uploads/hotels/"), path)
	assert.True(t, strings.HasSuffix(path, ".jpg"), path)
	assert.NotContains(t, path, "front view", "stored name must not reuse the client-supplied name")

	onDisk := filepath.Join(base, filepath.FromSlash(path))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Remove(context.Background(), "/"+path))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_RemoveMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, store.Remove(context.Background(), "/uploads/hotels/nope.jpg"))
}

func TestStore_DistinctNamesForSameOriginal(t *testing.T) {
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "uploads/hotels", "same.jpg", []byte("a"))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "uploads/hotels", "same.jpg", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
