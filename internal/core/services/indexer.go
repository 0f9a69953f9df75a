package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/credentia-labs/corpora-cli/internal/logger"
)

// DefaultBatchSize bounds concurrent content fetches. Fetches within a
// batch run concurrently; batches run sequentially, so total outstanding
// requests against the rate-limited content API never exceed this.
const DefaultBatchSize = 10

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Indexer orchestrates crawl, batched fetch, store upsert and corpus
// metadata update. Runs are idempotent per corpus: re-indexing an
// unchanged upstream leaves file_count unchanged and creates no
// duplicate rows.
type Indexer struct {
	api           driven.RepositoryAPI
	tokenProvider driven.TokenProvider
	corpusStore   driven.CorpusStore
	docStore      driven.DocumentStore
	crawler       *Crawler
	batchSize     int
}

// NewIndexer creates an indexer. The token provider may be nil for
// pre-authenticated content APIs (fakes in tests); when set, a missing
// credential fails the run before any network call.
func NewIndexer(
	api driven.RepositoryAPI,
	tokenProvider driven.TokenProvider,
	corpusStore driven.CorpusStore,
	docStore driven.DocumentStore,
	filter *Filter,
	batchSize int,
) *Indexer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Indexer{
		api:           api,
		tokenProvider: tokenProvider,
		corpusStore:   corpusStore,
		docStore:      docStore,
		crawler:       NewCrawler(api, filter),
		batchSize:     batchSize,
	}
}

// fetchResult records one candidate's outcome within a batch.
type fetchResult struct {
	content []byte
	skipped bool
}

// IndexRepository indexes one remote repository.
func (ix *Indexer) IndexRepository(
	ctx context.Context, desc domain.SourceDescriptor,
) (*domain.IndexReport, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("source descriptor: %w", err)
	}

	// Credential check short-circuits before any network call.
	if ix.tokenProvider != nil {
		if _, err := ix.tokenProvider.GetToken(ctx); err != nil {
			return nil, err
		}
	}

	logger.Section("Index Run")
	logger.Info("Indexing %s/%s", desc.Owner, desc.Name)

	branch, candidates, err := ix.crawler.Crawl(ctx, desc)
	if err != nil {
		return nil, err
	}

	corpus, err := ix.getOrCreateCorpus(ctx, desc.Owner, desc.Name, branch)
	if err != nil {
		return nil, err
	}

	var (
		indexed     int
		skipped     int
		readmeText  string
		now         = time.Now().UTC()
		crawledPath = make([]string, 0, len(candidates))
	)

	for start := 0; start < len(candidates); start += ix.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + ix.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		results := make([]fetchResult, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, cand := range batch {
			g.Go(func() error {
				content, err := ix.api.BlobContent(gctx, desc.Owner, desc.Name, cand.SHA)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					// A single failed fetch is recorded and skipped,
					// never aborting the batch.
					logger.Debug("Skipping %s: %v", cand.Path, fmt.Errorf("%w: %w", domain.ErrFileFetchFailed, err))
					results[i].skipped = true
					return nil
				}
				if len(content) == 0 || !utf8.Valid(content) {
					results[i].skipped = true
					return nil
				}

				name, ext := domain.NewDocumentFields(cand.Path)
				doc := domain.IndexedDocument{
					ID:        uuid.NewString(),
					CorpusID:  &corpus.ID,
					Path:      cand.Path,
					Name:      name,
					Extension: ext,
					Content:   string(content),
					Size:      cand.Size,
					IndexedAt: now,
				}
				// Each path is a distinct row, so concurrent upserts
				// within a batch never contend.
				if err := ix.docStore.Upsert(gctx, doc); err != nil {
					return fmt.Errorf("%w: upsert %s: %w", domain.ErrPersistenceFailed, cand.Path, err)
				}
				results[i].content = content
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i, res := range results {
			if res.skipped {
				skipped++
				continue
			}
			indexed++
			if readmeText == "" && isTopLevelReadme(batch[i].Path) {
				readmeText = string(res.content)
			}
		}
	}

	for _, cand := range candidates {
		crawledPath = append(crawledPath, cand.Path)
	}

	// Rows whose paths vanished upstream are pruned only after a fully
	// successful run, so a failed run can never delete content it did
	// not replace.
	pruned, err := ix.docStore.DeleteByCorpusExcept(ctx, corpus.ID, crawledPath)
	if err != nil {
		return nil, fmt.Errorf("%w: prune corpus %s: %w", domain.ErrPersistenceFailed, corpus.ID, err)
	}

	corpus.FileCount = indexed
	corpus.IndexedAt = now
	corpus.Description = nil
	if summary := ExtractDescription(readmeText); summary != "" {
		corpus.Description = &summary
	}

	if err := ix.corpusStore.Save(ctx, *corpus); err != nil {
		return nil, fmt.Errorf("%w: save corpus %s: %w", domain.ErrPersistenceFailed, corpus.ID, err)
	}

	logger.Info("Index complete: %d indexed, %d skipped, %d pruned", indexed, skipped, pruned)

	return &domain.IndexReport{
		CorpusID:     corpus.ID,
		IndexedCount: indexed,
		SkippedCount: skipped,
		PrunedCount:  pruned,
	}, nil
}

// getOrCreateCorpus loads the corpus row for (owner, name, branch) or
// creates it on the first indexing request. The row exists before any
// document write so re-runs update it in place, never duplicating it.
func (ix *Indexer) getOrCreateCorpus(
	ctx context.Context, owner, name, branch string,
) (*domain.Corpus, error) {
	corpus, err := ix.corpusStore.GetBySource(ctx, owner, name, branch)
	if err == nil {
		return corpus, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	corpus = &domain.Corpus{
		ID:     uuid.NewString(),
		Owner:  owner,
		Name:   name,
		Branch: branch,
	}
	if err := ix.corpusStore.Save(ctx, *corpus); err != nil {
		return nil, fmt.Errorf("%w: create corpus: %w", domain.ErrPersistenceFailed, err)
	}
	return corpus, nil
}

// isTopLevelReadme reports whether a path is the corpus's root README.
func isTopLevelReadme(p string) bool {
	if strings.Contains(p, "/") {
		return false
	}
	return strings.HasPrefix(p, "README")
}
