package services

import (
	"context"
	"fmt"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/credentia-labs/corpora-cli/internal/keywords"
	"github.com/credentia-labs/corpora-cli/internal/logger"
	"github.com/credentia-labs/corpora-cli/internal/relevance"
)

// LocatorFunc builds the source locator for a remote hit.
// The production wiring installs the GitHub web-URL builder.
type LocatorFunc func(corpus domain.Corpus, path string) string

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService serves keyword-ranked search over indexed repository
// content. Matching scans stored text directly; the store is the single
// source of truth and there is no parallel in-memory cache.
type SearchService struct {
	docStore    driven.DocumentStore
	corpusStore driven.CorpusStore
	matcher     keywords.Matcher
	locator     LocatorFunc
	excerptLen  int
}

// NewSearchService creates a search service. A nil matcher defaults to
// coarse substring matching; excerptLen <= 0 uses the stock bound.
func NewSearchService(
	docStore driven.DocumentStore,
	corpusStore driven.CorpusStore,
	matcher keywords.Matcher,
	locator LocatorFunc,
	excerptLen int,
) *SearchService {
	if matcher == nil {
		matcher = keywords.SubstringMatcher{}
	}
	if excerptLen <= 0 {
		excerptLen = relevance.DefaultExcerptLength
	}
	return &SearchService{
		docStore:    docStore,
		corpusStore: corpusStore,
		matcher:     matcher,
		locator:     locator,
		excerptLen:  excerptLen,
	}
}

// SearchRepositories scores every stored remote document against the
// keyword set and returns ranked, excerpted results. An empty keyword
// set is not an error: it yields an empty successful response.
func (s *SearchService) SearchRepositories(
	ctx context.Context, kws []string, opts domain.SearchOptions,
) (domain.SearchResponse, error) {
	logger.Section("Repository Search")
	logger.Debug("Keywords: %v", kws)

	if len(kws) == 0 {
		return domain.NewSearchResponse(nil), nil
	}

	docs, err := s.docStore.ListRemote(ctx, opts.CorpusIDs)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("list documents: %w", err)
	}

	scorer := relevance.NewScorer(s.matcher, kws)
	scored := make([]relevance.Scored, 0, len(docs))
	for _, doc := range docs {
		if !doc.Searchable() {
			continue
		}
		if score := scorer.Score(doc.Content, doc.Name, doc.Path); score > 0 {
			scored = append(scored, relevance.Scored{Document: doc, Score: score})
		}
	}

	ranked := relevance.Rank(scored, opts.Limit)
	logger.Debug("Scored %d documents, returning %d", len(scored), len(ranked))

	corpora, err := s.corpusIndex(ctx)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	results := make([]domain.SearchResult, 0, len(ranked))
	for _, hit := range ranked {
		doc := hit.Document

		var locator, corpusID string
		if doc.CorpusID != nil {
			corpusID = *doc.CorpusID
			if corpus, ok := corpora[corpusID]; ok && s.locator != nil {
				locator = s.locator(corpus, doc.Path)
			}
		}

		results = append(results, domain.SearchResult{
			DocumentID: doc.ID,
			Label:      doc.Name,
			Path:       doc.Path,
			CorpusID:   corpusID,
			Score:      hit.Score,
			Excerpt:    relevance.Excerpt(scorer, doc.Content, relevance.ModeCode, s.excerptLen),
			Locator:    locator,
		})
	}

	return domain.NewSearchResponse(results), nil
}

// corpusIndex loads all corpora keyed by ID for locator construction.
func (s *SearchService) corpusIndex(ctx context.Context) (map[string]domain.Corpus, error) {
	corpora, err := s.corpusStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	index := make(map[string]domain.Corpus, len(corpora))
	for _, c := range corpora {
		index[c.ID] = c
	}
	return index, nil
}
