package mcp

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// mockSearchService is a configurable driving.SearchService.
type mockSearchService struct {
	response domain.SearchResponse
	err      error
	keywords []string
	called   bool
}

func (m *mockSearchService) SearchRepositories(
	_ context.Context, keywords []string, _ domain.SearchOptions,
) (domain.SearchResponse, error) {
	m.called = true
	m.keywords = keywords
	return m.response, m.err
}

// mockIndexer is a configurable driving.Indexer.
type mockIndexer struct {
	report *domain.IndexReport
	err    error
	desc   domain.SourceDescriptor
}

func (m *mockIndexer) IndexRepository(
	_ context.Context, desc domain.SourceDescriptor,
) (*domain.IndexReport, error) {
	m.desc = desc
	return m.report, m.err
}

// mockDocumentService is a configurable driving.DocumentService.
type mockDocumentService struct {
	response domain.SearchResponse
	err      error
	keywords []string
	called   bool
}

func (m *mockDocumentService) Ingest(_ context.Context, _ string, _ domain.UploadType) (string, error) {
	return "doc-1", nil
}

func (m *mockDocumentService) Search(_ context.Context, keywords []string, _ int) (domain.SearchResponse, error) {
	m.called = true
	m.keywords = keywords
	return m.response, m.err
}

// mockCorpusService is a configurable driving.CorpusService.
type mockCorpusService struct {
	corpora []domain.Corpus
	err     error
	deleted []string
}

func (m *mockCorpusService) List(_ context.Context) ([]domain.Corpus, error) {
	return m.corpora, m.err
}

func (m *mockCorpusService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockReader is a configurable DocumentReader.
type mockReader struct {
	docs map[string]domain.IndexedDocument
}

func (m *mockReader) Get(_ context.Context, id string) (*domain.IndexedDocument, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockReader) ListByCorpus(_ context.Context, corpusID string) ([]domain.IndexedDocument, error) {
	var docs []domain.IndexedDocument
	for _, doc := range m.docs {
		if doc.CorpusID != nil && *doc.CorpusID == corpusID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
