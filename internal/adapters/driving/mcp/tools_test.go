package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestHandleSearchRepositories(t *testing.T) {
	search := &mockSearchService{
		response: domain.NewSearchResponse([]domain.SearchResult{{
			DocumentID: "doc-1",
			Label:      "manifest-builder.js",
			Path:       "src/manifest-builder.js",
			CorpusID:   "corpus-1",
			Score:      12,
			Excerpt:    "...builds the manifest...",
			Locator:    "https://github.com/contentauth/c2pa-js/blob/main/src/manifest-builder.js",
		}}),
	}
	server := newTestServer(t, &Ports{Search: search})

	_, out, err := server.handleSearchRepositories(context.Background(), nil, SearchInput{
		Message: "how do I build a manifest with a claim?",
	})
	require.NoError(t, err)

	assert.True(t, out.Found)
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "manifest-builder.js", out.Results[0].Label)
	assert.Equal(t, 12, out.Results[0].Score)

	// Vocabulary terms were extracted from the chat message.
	assert.Contains(t, search.keywords, "manifest")
	assert.Contains(t, search.keywords, "claim")
}

func TestHandleSearchRepositories_NoVocabularyTermsIsEmptyResult(t *testing.T) {
	// Matching documents exist, but a message without any vocabulary
	// term must not search on its raw tokens.
	search := &mockSearchService{
		response: domain.NewSearchResponse([]domain.SearchResult{{DocumentID: "doc-1", Score: 1}}),
	}
	server := newTestServer(t, &Ports{Search: search})

	_, out, err := server.handleSearchRepositories(context.Background(), nil, SearchInput{
		Message: "hello",
	})
	require.NoError(t, err)

	assert.False(t, out.Found)
	assert.Zero(t, out.Count)
	assert.Empty(t, out.Results)
	assert.Empty(t, out.Keywords)
	assert.False(t, search.called)
}

func TestHandleSearchDocuments_NoVocabularyTermsIsEmptyResult(t *testing.T) {
	docs := &mockDocumentService{
		response: domain.NewSearchResponse([]domain.SearchResult{{DocumentID: "local-1", Score: 1}}),
	}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Documents: docs})

	_, out, err := server.handleSearchDocuments(context.Background(), nil, SearchInput{
		Message: "hello",
	})
	require.NoError(t, err)

	assert.False(t, out.Found)
	assert.Zero(t, out.Count)
	assert.Empty(t, out.Results)
	assert.False(t, docs.called)
}

func TestHandleSearchRepositories_Error(t *testing.T) {
	search := &mockSearchService{err: errors.New("store unavailable")}
	server := newTestServer(t, &Ports{Search: search})

	_, _, err := server.handleSearchRepositories(context.Background(), nil, SearchInput{
		Message: "manifest",
	})
	assert.Error(t, err)
}

func TestHandleSearchDocuments(t *testing.T) {
	docs := &mockDocumentService{
		response: domain.NewSearchResponse([]domain.SearchResult{{
			DocumentID: "local-1",
			Label:      "notes.md",
			Path:       "notes.md",
			Score:      3,
			Locator:    "document://local-1",
		}}),
	}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Documents: docs})

	_, out, err := server.handleSearchDocuments(context.Background(), nil, SearchInput{
		Message: "where are my signing notes?",
	})
	require.NoError(t, err)
	assert.True(t, out.Found)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "document://local-1", out.Results[0].Locator)
}

func TestHandleIndexRepository(t *testing.T) {
	indexer := &mockIndexer{
		report: &domain.IndexReport{CorpusID: "corpus-1", IndexedCount: 7, SkippedCount: 2, PrunedCount: 1},
	}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Indexer: indexer})

	_, out, err := server.handleIndexRepository(context.Background(), nil, IndexInput{
		Owner: "contentauth",
		Name:  "c2pa-rs",
	})
	require.NoError(t, err)

	assert.Equal(t, "corpus-1", out.CorpusID)
	assert.Equal(t, 7, out.IndexedCount)
	assert.Equal(t, 2, out.SkippedCount)
	assert.Equal(t, 1, out.PrunedCount)
	assert.Equal(t, "contentauth", indexer.desc.Owner)
}

func TestHandleListCorpora(t *testing.T) {
	desc := "C2PA SDK"
	corpora := &mockCorpusService{
		corpora: []domain.Corpus{{
			ID: "corpus-1", Owner: "contentauth", Name: "c2pa-rs", Branch: "main",
			FileCount: 42, Description: &desc,
			IndexedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		}},
	}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Corpora: corpora})

	_, out, err := server.handleListCorpora(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	require.Len(t, out.Corpora, 1)
	assert.Equal(t, "c2pa-rs", out.Corpora[0].Name)
	assert.Equal(t, "C2PA SDK", out.Corpora[0].Description)
	assert.Equal(t, "2026-08-01T12:00:00Z", out.Corpora[0].IndexedAt)
}

func TestHandleDeleteCorpus(t *testing.T) {
	corpora := &mockCorpusService{}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Corpora: corpora})

	_, out, err := server.handleDeleteCorpus(context.Background(), nil, DeleteCorpusInput{CorpusID: "corpus-1"})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.Equal(t, []string{"corpus-1"}, corpora.deleted)
}

func TestHandleDeleteCorpus_NotFound(t *testing.T) {
	corpora := &mockCorpusService{err: domain.ErrNotFound}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Corpora: corpora})

	_, _, err := server.handleDeleteCorpus(context.Background(), nil, DeleteCorpusInput{CorpusID: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
