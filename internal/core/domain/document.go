package domain

import (
	"path"
	"strings"
	"time"
)

// IndexedDocument is one stored, searchable unit of text plus metadata.
// Remote documents carry the corpus they came from; local uploads have a
// nil CorpusID. Remote documents are upserted by (corpus_id, path); local
// uploads by ID.
type IndexedDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// CorpusID links to the Corpus for remote documents.
	// Nil for local uploads.
	CorpusID *string

	// Path is the file path within the corpus, or the stored path of a
	// local upload.
	Path string

	// Name is the base file name.
	Name string

	// Extension is the lowercased file extension including the dot,
	// empty for extensionless files.
	Extension string

	// Content is the full stored text.
	Content string

	// Size is the content length in bytes as reported by the source.
	Size int

	// IndexedAt is when this row was last written.
	IndexedAt time.Time
}

// Searchable reports whether the document is eligible for scoring.
// Documents with empty content never match.
func (d IndexedDocument) Searchable() bool {
	return len(d.Content) > 0
}

// IsLocal reports whether the document belongs to the local upload corpus.
func (d IndexedDocument) IsLocal() bool {
	return d.CorpusID == nil
}

// NewDocumentFields derives Name and Extension from a path.
func NewDocumentFields(p string) (name, ext string) {
	name = path.Base(p)
	ext = strings.ToLower(path.Ext(p))
	return name, ext
}
