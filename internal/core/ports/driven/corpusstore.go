package driven

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// CorpusStore persists corpus metadata.
// One row per remote corpus; (owner, name, branch) is unique.
type CorpusStore interface {
	// Save stores or updates a corpus by ID.
	Save(ctx context.Context, corpus domain.Corpus) error

	// Get retrieves a corpus by ID.
	Get(ctx context.Context, id string) (*domain.Corpus, error)

	// GetBySource retrieves a corpus by its (owner, name, branch) key.
	// Returns domain.ErrNotFound when the corpus has never been indexed.
	GetBySource(ctx context.Context, owner, name, branch string) (*domain.Corpus, error)

	// List returns all corpora.
	List(ctx context.Context) ([]domain.Corpus, error)

	// Delete removes a corpus and all of its documents.
	Delete(ctx context.Context, id string) error
}
