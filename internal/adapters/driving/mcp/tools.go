package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/keywords"
)

// IndexInput is the input schema for the index_repository tool.
type IndexInput struct {
	Owner  string `json:"owner" jsonschema:"repository owner (user or organisation)"`
	Name   string `json:"name" jsonschema:"repository name"`
	Branch string `json:"branch,omitempty" jsonschema:"branch to index (default branch when omitted)"`
}

// IndexOutput is the output schema for the index_repository tool.
type IndexOutput struct {
	CorpusID     string `json:"corpus_id"`
	IndexedCount int    `json:"indexed_count"`
	SkippedCount int    `json:"skipped_count"`
	PrunedCount  int    `json:"pruned_count"`
}

// SearchInput is the input schema for the search tools.
type SearchInput struct {
	Message   string   `json:"message" jsonschema:"the message or query to extract search keywords from"`
	CorpusIDs []string `json:"corpus_ids,omitempty" jsonschema:"restrict search to these corpora (all when omitted)"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Found    bool                 `json:"found"`
	Count    int                  `json:"count"`
	Keywords []string             `json:"keywords"`
	Results  []SearchResultOutput `json:"results"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string `json:"document_id"`
	Label      string `json:"label"`
	Path       string `json:"path"`
	CorpusID   string `json:"corpus_id,omitempty"`
	Score      int    `json:"score"`
	Excerpt    string `json:"excerpt,omitempty"`
	Locator    string `json:"locator,omitempty"`
}

// ListCorporaOutput is the output schema for the list_corpora tool.
type ListCorporaOutput struct {
	Corpora []CorpusOutput `json:"corpora"`
}

// CorpusOutput represents one indexed corpus.
type CorpusOutput struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Branch      string `json:"branch"`
	FileCount   int    `json:"file_count"`
	Description string `json:"description,omitempty"`
	IndexedAt   string `json:"indexed_at,omitempty"`
}

// DeleteCorpusInput is the input schema for the delete_corpus tool.
type DeleteCorpusInput struct {
	CorpusID string `json:"corpus_id" jsonschema:"the corpus to delete"`
}

// DeleteCorpusOutput is the output schema for the delete_corpus tool.
type DeleteCorpusOutput struct {
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_repositories",
		Description: "Search indexed repository corpora for content relevant to a message",
	}, s.handleSearchRepositories)

	if s.ports.Documents != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_documents",
			Description: "Search locally uploaded documents for content relevant to a message",
		}, s.handleSearchDocuments)
	}

	if s.ports.Indexer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "index_repository",
			Description: "Crawl a GitHub repository and index its text content for search",
		}, s.handleIndexRepository)
	}

	if s.ports.Corpora != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_corpora",
			Description: "List all indexed repository corpora",
		}, s.handleListCorpora)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "delete_corpus",
			Description: "Delete an indexed corpus and all of its documents",
		}, s.handleDeleteCorpus)
	}
}

// handleIndexRepository handles the index_repository tool invocation.
func (s *Server) handleIndexRepository(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	desc := domain.SourceDescriptor{
		Owner:  input.Owner,
		Name:   input.Name,
		Branch: input.Branch,
	}

	report, err := s.ports.Indexer.IndexRepository(ctx, desc)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	return nil, IndexOutput{
		CorpusID:     report.CorpusID,
		IndexedCount: report.IndexedCount,
		SkippedCount: report.SkippedCount,
		PrunedCount:  report.PrunedCount,
	}, nil
}

// handleSearchRepositories handles the search_repositories tool invocation.
func (s *Server) handleSearchRepositories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	// A message with no vocabulary term is a successful empty result,
	// never a raw-token search.
	kws := keywords.FromMessage(input.Message)
	if len(kws) == 0 {
		return nil, searchOutput(nil, domain.NewSearchResponse(nil)), nil
	}

	opts := domain.SearchOptions{
		Limit:     input.Limit,
		CorpusIDs: input.CorpusIDs,
	}
	resp, err := s.ports.Search.SearchRepositories(ctx, kws, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(kws, resp), nil
}

// handleSearchDocuments handles the search_documents tool invocation.
func (s *Server) handleSearchDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	kws := keywords.FromMessage(input.Message)
	if len(kws) == 0 {
		return nil, searchOutput(nil, domain.NewSearchResponse(nil)), nil
	}

	resp, err := s.ports.Documents.Search(ctx, kws, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(kws, resp), nil
}

// handleListCorpora handles the list_corpora tool invocation.
func (s *Server) handleListCorpora(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListCorporaOutput, error) {
	corpora, err := s.ports.Corpora.List(ctx)
	if err != nil {
		return nil, ListCorporaOutput{}, err
	}

	out := ListCorporaOutput{Corpora: make([]CorpusOutput, len(corpora))}
	for i, c := range corpora {
		out.Corpora[i] = CorpusOutput{
			ID:        c.ID,
			Owner:     c.Owner,
			Name:      c.Name,
			Branch:    c.Branch,
			FileCount: c.FileCount,
		}
		if c.Description != nil {
			out.Corpora[i].Description = *c.Description
		}
		if !c.IndexedAt.IsZero() {
			out.Corpora[i].IndexedAt = c.IndexedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return nil, out, nil
}

// handleDeleteCorpus handles the delete_corpus tool invocation.
func (s *Server) handleDeleteCorpus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteCorpusInput,
) (*mcp.CallToolResult, DeleteCorpusOutput, error) {
	if err := s.ports.Corpora.Delete(ctx, input.CorpusID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, DeleteCorpusOutput{}, fmt.Errorf("corpus %s not found", input.CorpusID)
		}
		return nil, DeleteCorpusOutput{}, err
	}
	return nil, DeleteCorpusOutput{Deleted: true}, nil
}

// searchOutput converts a domain response into the tool output schema.
func searchOutput(kws []string, resp domain.SearchResponse) SearchOutput {
	out := SearchOutput{
		Found:    resp.Found,
		Count:    resp.Count,
		Keywords: kws,
		Results:  make([]SearchResultOutput, len(resp.Results)),
	}
	for i, r := range resp.Results {
		out.Results[i] = SearchResultOutput{
			DocumentID: r.DocumentID,
			Label:      r.Label,
			Path:       r.Path,
			CorpusID:   r.CorpusID,
			Score:      r.Score,
			Excerpt:    r.Excerpt,
			Locator:    r.Locator,
		}
	}
	return out
}
