package mcp

import (
	"context"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
)

// DocumentReader serves the read-only resource surface. The document
// store satisfies it directly.
type DocumentReader interface {
	Get(ctx context.Context, id string) (*domain.IndexedDocument, error)
	ListByCorpus(ctx context.Context, corpusID string) ([]domain.IndexedDocument, error)
}

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search serves keyword search over indexed repositories.
	Search driving.SearchService

	// Indexer crawls and indexes remote repositories.
	Indexer driving.Indexer

	// Documents manages the local upload corpus.
	Documents driving.DocumentService

	// Corpora lists and deletes indexed corpora.
	Corpora driving.CorpusService

	// Reader resolves documents for the resource surface.
	Reader DocumentReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Indexer, Documents, Corpora and Reader are optional; the matching
	// tools and resources degrade when absent.
	return nil
}
