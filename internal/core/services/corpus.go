package services

import (
	"context"
	"fmt"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService exposes corpus management to operators.
type CorpusService struct {
	corpusStore driven.CorpusStore
}

// NewCorpusService creates a corpus service.
func NewCorpusService(corpusStore driven.CorpusStore) *CorpusService {
	return &CorpusService{corpusStore: corpusStore}
}

// List returns all indexed corpora.
func (s *CorpusService) List(ctx context.Context) ([]domain.Corpus, error) {
	corpora, err := s.corpusStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return corpora, nil
}

// Delete removes a corpus and all of its documents.
func (s *CorpusService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.corpusStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete corpus %s: %w", id, err)
	}
	return nil
}
