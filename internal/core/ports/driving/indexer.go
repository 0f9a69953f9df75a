package driving

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// Indexer crawls a remote repository and persists its indexable content.
type Indexer interface {
	// IndexRepository resolves the branch, crawls the file tree, fetches
	// content in bounded batches and upserts it, then updates corpus
	// metadata. Re-running against an unchanged upstream is idempotent.
	// Cancelling the context aborts the run between batches.
	IndexRepository(ctx context.Context, desc domain.SourceDescriptor) (*domain.IndexReport, error)
}
