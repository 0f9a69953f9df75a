// Package mcp provides an MCP (Model Context Protocol) server adapter for Corpora.
// It enables AI assistants like Claude to index repositories and search their content.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
