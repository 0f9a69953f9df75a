package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore for testing.
type CorpusStore struct {
	mu      sync.RWMutex
	corpora map[string]domain.Corpus
	docs    *DocumentStore
}

// NewCorpusStore creates a new in-memory corpus store. Pass the document
// store holding the corpora's documents so Delete cascades to them, as
// the SQLite adapter's foreign key does; nil disables the cascade.
func NewCorpusStore(docs *DocumentStore) *CorpusStore {
	return &CorpusStore{
		corpora: make(map[string]domain.Corpus),
		docs:    docs,
	}
}

// Save stores or updates a corpus.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	if corpus.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpora[corpus.ID] = corpus
	return nil
}

// Get retrieves a corpus by ID.
func (s *CorpusStore) Get(_ context.Context, id string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpus, ok := s.corpora[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &corpus, nil
}

// GetBySource retrieves a corpus by its repository coordinates.
func (s *CorpusStore) GetBySource(_ context.Context, owner, name, branch string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, corpus := range s.corpora {
		if corpus.Owner == owner && corpus.Name == name && corpus.Branch == branch {
			c := corpus
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all corpora ordered by slug.
func (s *CorpusStore) List(_ context.Context) ([]domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpora := make([]domain.Corpus, 0, len(s.corpora))
	for _, corpus := range s.corpora {
		corpora = append(corpora, corpus)
	}
	sort.Slice(corpora, func(i, j int) bool {
		return corpora[i].Slug() < corpora[j].Slug()
	})
	return corpora, nil
}

// Delete removes a corpus and all of its documents.
func (s *CorpusStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.corpora[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.corpora, id)
	s.mu.Unlock()

	if s.docs != nil {
		if _, err := s.docs.DeleteByCorpusExcept(ctx, id, nil); err != nil {
			return err
		}
	}
	return nil
}
