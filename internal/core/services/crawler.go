package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/logger"
)

// Candidate is one indexable file discovered by the crawler.
type Candidate struct {
	Path string
	SHA  string
	Size int
}

// Filter is the declarative predicate deciding which tree entries are
// indexable. ShouldIndex is pure: the same input always yields the same
// verdict.
type Filter struct {
	// Extensions is the lowercase extension allow-list (with dots).
	Extensions map[string]bool

	// SpecialNames are case-sensitive extensionless or conventional
	// file names indexed regardless of extension.
	SpecialNames map[string]bool

	// IgnoreSubstrings excludes any path containing one of these.
	IgnoreSubstrings []string

	// MaxFileSize excludes files larger than this many bytes.
	// Zero means no size cap.
	MaxFileSize int
}

// DefaultFilter returns the stock indexable-file policy.
func DefaultFilter() *Filter {
	return &Filter{
		Extensions: map[string]bool{
			".md": true, ".markdown": true, ".txt": true, ".rst": true,
			".go": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
			".py": true, ".rs": true, ".rb": true, ".java": true, ".kt": true,
			".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true,
			".swift": true, ".sh": true, ".sql": true,
			".json": true, ".yaml": true, ".yml": true, ".toml": true,
			".html": true, ".css": true, ".proto": true,
		},
		SpecialNames: map[string]bool{
			"README":     true,
			"LICENSE":    true,
			"Dockerfile": true,
			"Makefile":   true,
			"CHANGELOG":  true,
		},
		IgnoreSubstrings: []string{
			"node_modules/", "vendor/", "dist/", "build/", "target/",
			"__pycache__/", ".git/", ".min.", "lock", ".env",
		},
		MaxFileSize: 1024 * 1024,
	}
}

// ShouldIndex reports whether a tree path is an indexable candidate.
func (f *Filter) ShouldIndex(p string) bool {
	for _, ignore := range f.IgnoreSubstrings {
		if strings.Contains(p, ignore) {
			return false
		}
	}

	base := path.Base(p)
	if f.SpecialNames[base] {
		return true
	}
	// README.md, CHANGELOG.md etc. match by stem, case-sensitively.
	if stem := strings.TrimSuffix(base, path.Ext(base)); f.SpecialNames[stem] {
		return true
	}

	return f.Extensions[strings.ToLower(path.Ext(p))]
}

// Crawler enumerates a remote repository's indexable files. It resolves
// the reference branch, fetches the recursive tree in one call and
// filters each leaf entry.
type Crawler struct {
	api    driven.RepositoryAPI
	filter *Filter
}

// NewCrawler creates a crawler over a content API with a filter policy.
func NewCrawler(api driven.RepositoryAPI, filter *Filter) *Crawler {
	if filter == nil {
		filter = DefaultFilter()
	}
	return &Crawler{api: api, filter: filter}
}

// Crawl resolves the branch (defaulting from repository metadata when the
// descriptor omits it) and returns the ordered candidate list. Failures
// to reach the repository or its tree surface as ErrSourceUnavailable
// and abort before any store writes.
func (c *Crawler) Crawl(ctx context.Context, desc domain.SourceDescriptor) (string, []Candidate, error) {
	branch := desc.Branch
	if branch == "" {
		resolved, err := c.api.DefaultBranch(ctx, desc.Owner, desc.Name)
		if err != nil {
			return "", nil, fmt.Errorf("%w: resolve branch %s/%s: %w",
				domain.ErrSourceUnavailable, desc.Owner, desc.Name, err)
		}
		branch = resolved
		logger.Debug("Resolved default branch %s for %s/%s", branch, desc.Owner, desc.Name)
	}

	entries, err := c.api.Tree(ctx, desc.Owner, desc.Name, branch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: fetch tree %s/%s@%s: %w",
			domain.ErrSourceUnavailable, desc.Owner, desc.Name, branch, err)
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		if !c.filter.ShouldIndex(entry.Path) {
			continue
		}
		if c.filter.MaxFileSize > 0 && entry.Size > c.filter.MaxFileSize {
			continue
		}
		candidates = append(candidates, Candidate{
			Path: entry.Path,
			SHA:  entry.SHA,
			Size: entry.Size,
		})
	}

	logger.Debug("Crawl %s/%s@%s: %d entries, %d candidates",
		desc.Owner, desc.Name, branch, len(entries), len(candidates))

	return branch, candidates, nil
}
