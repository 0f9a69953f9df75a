package driving

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// SearchService serves keyword-ranked search over indexed repository
// content. Keywords are already normalised (see internal/keywords); an
// empty keyword set yields an empty successful response.
type SearchService interface {
	// SearchRepositories scores every stored remote document against the
	// keyword set and returns ranked, excerpted results.
	SearchRepositories(ctx context.Context, keywords []string, opts domain.SearchOptions) (domain.SearchResponse, error)
}

// DocumentService manages the local upload corpus.
type DocumentService interface {
	// Ingest reads an uploaded file from the blob store and upserts it
	// as a local document. Returns the document ID.
	Ingest(ctx context.Context, path string, fileType domain.UploadType) (string, error)

	// Search scores the local corpus against the keyword set.
	Search(ctx context.Context, keywords []string, limit int) (domain.SearchResponse, error)
}

// CorpusService exposes corpus management to operators.
type CorpusService interface {
	// List returns all indexed corpora.
	List(ctx context.Context) ([]domain.Corpus, error)

	// Delete removes a corpus and its documents.
	Delete(ctx context.Context, id string) error
}
