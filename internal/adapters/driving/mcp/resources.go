package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Corpora resources.
	uriScheme = "corpora://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing corpora.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpora",
		Name:        "corpora",
		Description: "List of all indexed repository corpora",
		MIMEType:    "application/json",
	}, s.handleCorporaResource)

	// Template for corpus documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "corpora/{corpusId}/documents",
		Name:        "corpus-documents",
		Description: "Documents indexed from a specific corpus",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Content of a specific indexed document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleCorporaResource returns a list of all indexed corpora.
func (s *Server) handleCorporaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpora == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	corpora, err := s.ports.Corpora.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing corpora: %w", err)
	}

	// Build simplified corpus list.
	type corpusInfo struct {
		ID        string `json:"id"`
		Slug      string `json:"slug"`
		FileCount int    `json:"file_count"`
	}

	infos := make([]corpusInfo, len(corpora))
	for i, c := range corpora {
		infos[i] = corpusInfo{
			ID:        c.ID,
			Slug:      c.Slug(),
			FileCount: c.FileCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling corpora: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentsResource returns documents for a specific corpus.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reader == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract corpusId from URI: corpora://corpora/{corpusId}/documents
	corpusID := extractCorpusID(req.Params.URI)
	if corpusID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Reader.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		ID   string `json:"id"`
		Path string `json:"path"`
		Size int    `json:"size"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:   docs[i].ID,
			Path: docs[i].Path,
			Size: docs[i].Size,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reader == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: corpora://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Reader.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content,
		}},
	}, nil
}

// extractCorpusID extracts the corpus ID from a URI like corpora://corpora/{corpusId}/documents.
func extractCorpusID(uri string) string {
	const prefix = uriScheme + "corpora/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDocumentID extracts the document ID from a URI like corpora://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
