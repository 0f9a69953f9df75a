package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

func TestBlobStore_ReadRelativePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("signing notes"), 0600))

	data, err := store.Read(context.Background(), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "signing notes", string(data))
}

func TestBlobStore_ReadAbsolutePathInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	full := filepath.Join(dir, "drop.md")
	require.NoError(t, os.WriteFile(full, []byte("# dropped"), 0600))

	data, err := store.Read(context.Background(), full)
	require.NoError(t, err)
	assert.Equal(t, "# dropped", string(data))
}

func TestBlobStore_ReadMissing(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobStore_RejectsEscapes(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "../outside.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Read(context.Background(), "/etc/passwd")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Read(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlobStore_Exists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	assert.False(t, store.Exists(context.Background(), "notes.txt"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	assert.True(t, store.Exists(context.Background(), "notes.txt"))
}
