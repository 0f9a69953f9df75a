package domain

import (
	"fmt"
	"strings"
	"time"
)

// Corpus represents one indexable source of text: a snapshot of a remote
// repository, identified by owner, name and branch. The local upload
// collection is an implicit singleton and has no Corpus row.
type Corpus struct {
	// ID is the unique identifier for the corpus.
	ID string

	// Owner is the repository owner (user or organisation).
	Owner string

	// Name is the repository name.
	Name string

	// Branch is the indexed branch. Resolved to the repository's default
	// branch when the caller omits it.
	Branch string

	// FileCount is the number of documents stored by the last completed
	// index run. Only a completed run's count is authoritative.
	FileCount int

	// Description is extracted from the corpus's top-level README.
	// Nil when no suitable paragraph was found.
	Description *string

	// IndexedAt is when the last index run completed.
	IndexedAt time.Time
}

// Slug returns the owner/name@branch form used in logs and CLI output.
func (c Corpus) Slug() string {
	return fmt.Sprintf("%s/%s@%s", c.Owner, c.Name, c.Branch)
}

// SourceDescriptor identifies a remote repository to index.
// Branch may be empty, in which case the default branch is resolved.
type SourceDescriptor struct {
	Owner  string
	Name   string
	Branch string
}

// Validate checks the descriptor has an owner and a name.
func (d SourceDescriptor) Validate() error {
	if strings.TrimSpace(d.Owner) == "" || strings.TrimSpace(d.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}

// IndexReport summarises a completed index run.
type IndexReport struct {
	// CorpusID is the corpus that was indexed.
	CorpusID string

	// IndexedCount is the number of files successfully fetched and stored.
	IndexedCount int

	// SkippedCount is the number of candidates skipped because their
	// content was empty, undecodable, or failed to fetch. Per-file
	// failures are aggregated here and never surfaced individually.
	SkippedCount int

	// PrunedCount is the number of stale rows removed because their
	// paths no longer exist upstream.
	PrunedCount int
}
