package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

func newRemoteDoc(id, corpusID, path, content string) domain.IndexedDocument {
	name, ext := domain.NewDocumentFields(path)
	return domain.IndexedDocument{
		ID:        id,
		CorpusID:  &corpusID,
		Path:      path,
		Name:      name,
		Extension: ext,
		Content:   content,
		Size:      len(content),
	}
}

func TestDocumentStore_UpsertAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "src/claim.rs", "struct Claim {}")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "src/claim.rs", got.Path)
	assert.Equal(t, "claim.rs", got.Name)
	assert.False(t, got.IndexedAt.IsZero())
}

func TestDocumentStore_UpsertPreservesIDOnPathConflict(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "README.md", "old")))
	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-2", "corpus-1", "README.md", "new")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)

	_, err = store.Get(ctx, "doc-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpsertRejectsInvalid(t *testing.T) {
	store := NewDocumentStore()

	assert.ErrorIs(t, store.Upsert(context.Background(), domain.IndexedDocument{Path: "a.go"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Upsert(context.Background(), domain.IndexedDocument{ID: "x"}), domain.ErrInvalidInput)
}

func TestDocumentStore_ListRemoteAndLocal(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "a.go", "package a")))
	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-2", "corpus-2", "b.go", "package b")))
	require.NoError(t, store.Upsert(ctx, domain.IndexedDocument{ID: "local-1", Path: "notes.txt", Content: "notes"}))

	remote, err := store.ListRemote(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, remote, 2)

	filtered, err := store.ListRemote(ctx, []string{"corpus-1"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "doc-1", filtered[0].ID)

	local, err := store.ListLocal(ctx)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "local-1", local[0].ID)
}

func TestDocumentStore_DeleteByCorpusExcept(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "keep.go", "package a")))
	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-2", "corpus-1", "stale.go", "package a")))
	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-3", "corpus-2", "other.go", "package b")))

	removed, err := store.DeleteByCorpusExcept(ctx, "corpus-1", []string{"keep.go"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "doc-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Other corpora are untouched.
	_, err = store.Get(ctx, "doc-3")
	assert.NoError(t, err)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "a.go", "package a")))
	require.NoError(t, store.Delete(ctx, "doc-1"))
	assert.ErrorIs(t, store.Delete(ctx, "doc-1"), domain.ErrNotFound)
}

func TestCorpusStore_SaveGetDelete(t *testing.T) {
	store := NewCorpusStore(nil)
	ctx := context.Background()

	corpus := domain.Corpus{ID: "corpus-1", Owner: "contentauth", Name: "c2pa-rs", Branch: "main"}
	require.NoError(t, store.Save(ctx, corpus))

	got, err := store.Get(ctx, "corpus-1")
	require.NoError(t, err)
	assert.Equal(t, "contentauth/c2pa-rs@main", got.Slug())

	bySource, err := store.GetBySource(ctx, "contentauth", "c2pa-rs", "main")
	require.NoError(t, err)
	assert.Equal(t, "corpus-1", bySource.ID)

	_, err = store.GetBySource(ctx, "contentauth", "c2pa-rs", "develop")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "corpus-1"))
	assert.ErrorIs(t, store.Delete(ctx, "corpus-1"), domain.ErrNotFound)
}

func TestCorpusStore_DeleteCascadesToDocuments(t *testing.T) {
	docs := NewDocumentStore()
	store := NewCorpusStore(docs)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Corpus{ID: "corpus-1", Owner: "acme", Name: "repo", Branch: "main"}))
	require.NoError(t, docs.Upsert(ctx, newRemoteDoc("doc-1", "corpus-1", "a.go", "package a")))
	require.NoError(t, docs.Upsert(ctx, newRemoteDoc("doc-2", "corpus-2", "b.go", "package b")))

	require.NoError(t, store.Delete(ctx, "corpus-1"))

	_, err := docs.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Other corpora keep their documents.
	_, err = docs.Get(ctx, "doc-2")
	assert.NoError(t, err)
}

func TestCorpusStore_ListSortedBySlug(t *testing.T) {
	store := NewCorpusStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Corpus{ID: "b", Owner: "zeta", Name: "repo", Branch: "main"}))
	require.NoError(t, store.Save(ctx, domain.Corpus{ID: "a", Owner: "alpha", Name: "repo", Branch: "main"}))

	corpora, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, corpora, 2)
	assert.Equal(t, "alpha", corpora[0].Owner)
	assert.Equal(t, "zeta", corpora[1].Owner)
}
