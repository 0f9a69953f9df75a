package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/credentia-labs/corpora-cli/internal/keywords"
	"github.com/credentia-labs/corpora-cli/internal/logger"
	"github.com/credentia-labs/corpora-cli/internal/relevance"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the local upload corpus: ingesting stored
// uploads and searching them. Local documents have no corpus row and are
// keyed by their own ID.
type DocumentService struct {
	docStore   driven.DocumentStore
	blobStore  driven.BlobStore
	matcher    keywords.Matcher
	excerptLen int
}

// NewDocumentService creates a document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	blobStore driven.BlobStore,
	matcher keywords.Matcher,
	excerptLen int,
) *DocumentService {
	if matcher == nil {
		matcher = keywords.SubstringMatcher{}
	}
	if excerptLen <= 0 {
		excerptLen = relevance.DefaultExcerptLength
	}
	return &DocumentService{
		docStore:   docStore,
		blobStore:  blobStore,
		matcher:    matcher,
		excerptLen: excerptLen,
	}
}

// Ingest reads an uploaded file from the blob store and upserts it as a
// local document. Markdown uploads have their markup stripped before
// storage. Returns the document ID.
func (s *DocumentService) Ingest(
	ctx context.Context, path string, fileType domain.UploadType,
) (string, error) {
	switch fileType {
	case domain.UploadText, domain.UploadMarkdown:
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, fileType)
	}

	content, err := s.blobStore.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", domain.ErrFileFetchFailed, path, err)
	}
	if len(content) == 0 || !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is empty or not text", domain.ErrInvalidInput, path)
	}

	text := string(content)
	if fileType == domain.UploadMarkdown {
		text = stripMarkdown(text)
	}

	// Re-ingesting a path overwrites its existing row; local upserts
	// key on ID, so the ID must be reused to avoid duplicates.
	id, err := s.localDocumentID(ctx, path)
	if err != nil {
		return "", err
	}

	name, ext := domain.NewDocumentFields(path)
	doc := domain.IndexedDocument{
		ID:        id,
		Path:      path,
		Name:      name,
		Extension: ext,
		Content:   text,
		Size:      len(text),
		IndexedAt: time.Now().UTC(),
	}

	if err := s.docStore.Upsert(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: upsert %s: %w", domain.ErrPersistenceFailed, path, err)
	}

	logger.Info("Ingested local document %s (%d bytes)", path, doc.Size)
	return doc.ID, nil
}

// localDocumentID returns the ID of the local document stored at path,
// or a fresh one when the path has never been ingested.
func (s *DocumentService) localDocumentID(ctx context.Context, path string) (string, error) {
	locals, err := s.docStore.ListLocal(ctx)
	if err != nil {
		return "", fmt.Errorf("list local documents: %w", err)
	}
	for _, existing := range locals {
		if existing.Path == path {
			return existing.ID, nil
		}
	}
	return uuid.NewString(), nil
}

// Search scores the local corpus against the keyword set. Local uploads
// are prose, so excerpts use the symmetric character window.
func (s *DocumentService) Search(
	ctx context.Context, kws []string, limit int,
) (domain.SearchResponse, error) {
	logger.Section("Document Search")
	logger.Debug("Keywords: %v", kws)

	if len(kws) == 0 {
		return domain.NewSearchResponse(nil), nil
	}

	docs, err := s.docStore.ListLocal(ctx)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("list local documents: %w", err)
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

	ranked := relevance.Rank(scored, limit)

	results := make([]domain.SearchResult, 0, len(ranked))
	for _, hit := range ranked {
		doc := hit.Document
		results = append(results, domain.SearchResult{
			DocumentID: doc.ID,
			Label:      doc.Name,
			Path:       doc.Path,
			Score:      hit.Score,
			Excerpt:    relevance.Excerpt(scorer, doc.Content, relevance.ModeProse, s.excerptLen),
			Locator:    "document://" + doc.ID,
		})
	}

	return domain.NewSearchResponse(results), nil
}
