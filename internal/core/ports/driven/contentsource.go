package driven

import "context"

// TreeEntry is one leaf of a repository's recursive file tree.
type TreeEntry struct {
	// Path is the file path relative to the repository root.
	Path string

	// SHA addresses the blob for content fetches.
	SHA string

	// Size is the blob size in bytes.
	Size int
}

// RepositoryAPI is the remote content API the crawler and indexer consume.
// The production implementation wraps the GitHub REST API; tests inject a
// fake. A client instance is constructed per index run; there is no
// module-scoped singleton.
type RepositoryAPI interface {
	// DefaultBranch resolves the repository's default branch from its
	// metadata. Returns domain.ErrSourceUnavailable if the repository
	// does not exist or is inaccessible.
	DefaultBranch(ctx context.Context, owner, name string) (string, error)

	// Tree fetches the full recursive file tree of a branch in one call.
	// Only blob entries are returned.
	Tree(ctx context.Context, owner, name, branch string) ([]TreeEntry, error)

	// BlobContent fetches and decodes one file's content by blob SHA.
	BlobContent(ctx context.Context, owner, name, sha string) ([]byte, error)
}
