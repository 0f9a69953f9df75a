package memory

import (
	"context"
	"sync"
	"time"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore
// for testing. It mirrors the SQLite adapter's upsert semantics: remote
// documents conflict on (corpus ID, path) and keep their original ID.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.IndexedDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]domain.IndexedDocument),
	}
}

// Upsert stores or overwrites a document.
func (s *DocumentStore) Upsert(_ context.Context, doc domain.IndexedDocument) error {
	if doc.ID == "" || doc.Path == "" {
		return domain.ErrInvalidInput
	}
	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.CorpusID != nil {
		for id, existing := range s.docs {
			if existing.CorpusID != nil && *existing.CorpusID == *doc.CorpusID && existing.Path == doc.Path {
				doc.ID = id
				break
			}
		}
	}

	s.docs[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.IndexedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListByCorpus returns all documents of one corpus.
func (s *DocumentStore) ListByCorpus(_ context.Context, corpusID string) ([]domain.IndexedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.IndexedDocument
	for _, doc := range s.docs {
		if doc.CorpusID != nil && *doc.CorpusID == corpusID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// ListRemote returns all remote documents, optionally filtered to a set
// of corpora.
func (s *DocumentStore) ListRemote(_ context.Context, corpusIDs []string) ([]domain.IndexedDocument, error) {
	wanted := make(map[string]bool, len(corpusIDs))
	for _, id := range corpusIDs {
		wanted[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.IndexedDocument
	for _, doc := range s.docs {
		if doc.CorpusID == nil {
			continue
		}
		if len(wanted) > 0 && !wanted[*doc.CorpusID] {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListLocal returns all local upload documents.
func (s *DocumentStore) ListLocal(_ context.Context) ([]domain.IndexedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.IndexedDocument
	for _, doc := range s.docs {
		if doc.CorpusID == nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// DeleteByCorpusExcept removes documents of a corpus whose paths are not
// in keep and returns the number of documents removed.
func (s *DocumentStore) DeleteByCorpusExcept(_ context.Context, corpusID string, keep []string) (int, error) {
	kept := make(map[string]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, doc := range s.docs {
		if doc.CorpusID == nil || *doc.CorpusID != corpusID {
			continue
		}
		if kept[doc.Path] {
			continue
		}
		delete(s.docs, id)
		removed++
	}
	return removed, nil
}

// Delete removes a single document by ID.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
