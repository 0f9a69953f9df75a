package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credentia-labs/corpora-cli/internal/adapters/driven/storage/memory"
	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

func newTestDocumentService(files map[string][]byte) (*DocumentService, *memory.DocumentStore) {
	docStore := memory.NewDocumentStore()
	svc := NewDocumentService(docStore, &fakeBlobStore{files: files}, nil, 0)
	return svc, docStore
}

func TestIngest_StoresLocalDocument(t *testing.T) {
	svc, docStore := newTestDocumentService(map[string][]byte{
		"notes.md": []byte("# Notes\n\nmanifest handling notes\n"),
	})
	ctx := context.Background()

	id, err := svc.Ingest(ctx, "notes.md", domain.UploadMarkdown)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := docStore.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, doc.CorpusID)
	assert.Equal(t, "notes.md", doc.Path)
	assert.Equal(t, "notes.md", doc.Name)
	assert.Equal(t, ".md", doc.Extension)
	assert.Equal(t, "Notes\n\nmanifest handling notes\n", doc.Content)
	assert.Equal(t, len(doc.Content), doc.Size)
	assert.False(t, doc.IndexedAt.IsZero())
}

func TestIngest_SamePathReusesDocument(t *testing.T) {
	files := map[string][]byte{"notes.txt": []byte("first version")}
	svc, docStore := newTestDocumentService(files)
	ctx := context.Background()

	firstID, err := svc.Ingest(ctx, "notes.txt", domain.UploadText)
	require.NoError(t, err)

	files["notes.txt"] = []byte("second version")
	secondID, err := svc.Ingest(ctx, "notes.txt", domain.UploadText)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)

	locals, err := docStore.ListLocal(ctx)
	require.NoError(t, err)
	require.Len(t, locals, 1)
	assert.Equal(t, "second version", locals[0].Content)
}

func TestIngest_UnsupportedType(t *testing.T) {
	svc, _ := newTestDocumentService(nil)

	_, err := svc.Ingest(context.Background(), "notes.pdf", domain.UploadType("pdf"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestIngest_MissingFile(t *testing.T) {
	svc, _ := newTestDocumentService(nil)

	_, err := svc.Ingest(context.Background(), "absent.txt", domain.UploadText)

	assert.ErrorIs(t, err, domain.ErrFileFetchFailed)
}

func TestIngest_RejectsEmptyAndBinary(t *testing.T) {
	svc, _ := newTestDocumentService(map[string][]byte{
		"empty.txt":  {},
		"binary.txt": {0xff, 0xfe, 0x00},
	})
	ctx := context.Background()

	_, err := svc.Ingest(ctx, "empty.txt", domain.UploadText)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(ctx, "binary.txt", domain.UploadText)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentSearch_RanksLocalUploads(t *testing.T) {
	svc, docStore := newTestDocumentService(map[string][]byte{
		"signing.md": []byte("How signing works: the signature covers the claim.\n"),
		"todo.txt":   []byte("buy milk\n"),
	})
	ctx := context.Background()

	signingID, err := svc.Ingest(ctx, "signing.md", domain.UploadMarkdown)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "todo.txt", domain.UploadText)
	require.NoError(t, err)

	resp, err := svc.Search(ctx, []string{"signing"}, 10)
	require.NoError(t, err)

	require.Equal(t, 1, resp.Count)
	hit := resp.Results[0]
	assert.Equal(t, signingID, hit.DocumentID)
	assert.Equal(t, "document://"+signingID, hit.Locator)
	assert.Contains(t, hit.Excerpt, "signing")
	assert.Empty(t, hit.CorpusID)

	// Remote documents never appear in local search.
	corpusID := "corpus-1"
	require.NoError(t, docStore.Upsert(ctx, domain.IndexedDocument{
		ID: "remote-1", CorpusID: &corpusID, Path: "docs/signing.md",
		Name: "signing.md", Content: "signing docs", Size: 12,
	}))
	resp, err = svc.Search(ctx, []string{"signing"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestDocumentSearch_EmptyKeywords(t *testing.T) {
	svc, _ := newTestDocumentService(nil)

	resp, err := svc.Search(context.Background(), nil, 5)
	require.NoError(t, err)

	assert.False(t, resp.Found)
	assert.Empty(t, resp.Results)
}
