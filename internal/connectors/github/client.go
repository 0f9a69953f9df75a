package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Client implements the content API port.
var _ driven.RepositoryAPI = (*Client)(nil)

// Client wraps the go-github client behind the RepositoryAPI port.
// One Client is constructed per index run and injected into the indexer.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// NewClient creates a client whose credential is resolved lazily from
// the token provider on first use.
func NewClient(tokenProvider driven.TokenProvider) *Client {
	return &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
	}
}

// NewClientWithToken creates a client with a static access token.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		rateLimiter: NewRateLimiter(),
	}
}

// ensureClient initialises the go-github client if not already done.
// Called lazily so the token provider can refuse before any network call.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.gh = gh.NewClient(tc)

	return nil
}

// DefaultBranch resolves the repository's default branch from metadata.
func (c *Client) DefaultBranch(ctx context.Context, owner, name string) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", c.wrapError(err, "get repository")
	}

	c.updateRateLimitFromResponse(resp)
	return repo.GetDefaultBranch(), nil
}

// Tree fetches the full recursive file tree of a branch in one call.
// Only blob entries are returned, in tree order.
func (c *Client) Tree(ctx context.Context, owner, name, branch string) ([]driven.TreeEntry, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, name, branch, true) // recursive=true
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	c.updateRateLimitFromResponse(resp)

	return treeEntries(tree)
}

// treeEntries converts a git tree response to blob entries. The API
// truncates recursive trees past its entry limit; indexing a truncated
// tree would silently cover a partial file set, so it is refused.
func treeEntries(tree *gh.Tree) ([]driven.TreeEntry, error) {
	if tree.GetTruncated() {
		return nil, errors.New("get tree: tree truncated, repository too large to crawl in one call")
	}

	entries := make([]driven.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		entries = append(entries, driven.TreeEntry{
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
			Size: entry.GetSize(),
		})
	}

	return entries, nil
}

// BlobContent fetches one blob by SHA and decodes its content.
func (c *Client) BlobContent(ctx context.Context, owner, name, sha string) ([]byte, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, owner, name, sha)
	if err != nil {
		return nil, c.wrapError(err, "get blob")
	}
	c.updateRateLimitFromResponse(resp)

	if blob.GetEncoding() == "base64" {
		raw := strings.ReplaceAll(blob.GetContent(), "\n", "")
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: decode blob %s: %w", domain.ErrFileFetchFailed, sha, err)
		}
		return decoded, nil
	}

	return []byte(blob.GetContent()), nil
}

// RateLimiter returns the rate limiter for external inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the limiter from response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			Operation:  operation,
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
