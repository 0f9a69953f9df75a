package driven

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// DocumentStore persists indexed document text and metadata.
// It is the single source of truth for search: the read path scans stored
// content directly, so no separate index structure exists to invalidate.
type DocumentStore interface {
	// Upsert stores or overwrites a document. Remote documents are keyed
	// by (corpus_id, path); local uploads by ID.
	Upsert(ctx context.Context, doc domain.IndexedDocument) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.IndexedDocument, error)

	// ListByCorpus returns all documents of one corpus.
	ListByCorpus(ctx context.Context, corpusID string) ([]domain.IndexedDocument, error)

	// ListRemote returns all remote documents, optionally filtered to a
	// set of corpora. Empty filter means all corpora.
	ListRemote(ctx context.Context, corpusIDs []string) ([]domain.IndexedDocument, error)

	// ListLocal returns all local upload documents.
	ListLocal(ctx context.Context) ([]domain.IndexedDocument, error)

	// DeleteByCorpusExcept removes documents of a corpus whose paths are
	// not in keep. Returns the number of rows removed. An empty keep set
	// removes every document of the corpus.
	DeleteByCorpusExcept(ctx context.Context, corpusID string, keep []string) (int, error)

	// Delete removes a single document by ID.
	Delete(ctx context.Context, id string) error
}
