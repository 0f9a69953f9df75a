package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

// stubSearchService returns a canned response.
type stubSearchService struct {
	response domain.SearchResponse
	err      error
	keywords []string
}

func (s *stubSearchService) SearchRepositories(
	_ context.Context, keywords []string, _ domain.SearchOptions,
) (domain.SearchResponse, error) {
	s.keywords = keywords
	return s.response, s.err
}

// stubCorpusService returns a canned corpus list.
type stubCorpusService struct {
	corpora []domain.Corpus
	err     error
	deleted []string
}

func (s *stubCorpusService) List(_ context.Context) ([]domain.Corpus, error) {
	return s.corpora, s.err
}

func (s *stubCorpusService) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// newTestCmd builds a command with captured output and a background context.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

func resetServices(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetServices(Services{}) })
}

func TestParseRepoArg(t *testing.T) {
	desc, err := parseRepoArg("contentauth/c2pa-rs")
	require.NoError(t, err)
	assert.Equal(t, "contentauth", desc.Owner)
	assert.Equal(t, "c2pa-rs", desc.Name)

	for _, bad := range []string{"", "c2pa-rs", "a/b/c", "/repo", "owner/"} {
		_, err := parseRepoArg(bad)
		assert.Error(t, err, "arg %q", bad)
	}
}

func TestRunSearch_TableOutput(t *testing.T) {
	resetServices(t)
	search := &stubSearchService{
		response: domain.NewSearchResponse([]domain.SearchResult{{
			DocumentID: "doc-1",
			Label:      "manifest.rs",
			Path:       "src/manifest.rs",
			Score:      9,
			Excerpt:    "...the manifest store...",
			Locator:    "https://github.com/contentauth/c2pa-rs/blob/main/src/manifest.rs",
		}}),
	}
	SetServices(Services{Search: search})

	cmd, buf := newTestCmd(t)
	searchJSON = false
	err := runSearch(cmd, []string{"manifest store"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "manifest.rs (9)")
	assert.Contains(t, out, "src/manifest.rs")
	assert.Contains(t, out, "the manifest store")

	// Query mode keyword extraction applied.
	assert.Equal(t, []string{"manifest", "store"}, search.keywords)
}

func TestRunSearch_NoResults(t *testing.T) {
	resetServices(t)
	SetServices(Services{Search: &stubSearchService{}})

	cmd, buf := newTestCmd(t)
	searchJSON = false
	err := runSearch(cmd, []string{"zzz"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestRunSearch_JSONOutput(t *testing.T) {
	resetServices(t)
	SetServices(Services{Search: &stubSearchService{
		response: domain.NewSearchResponse([]domain.SearchResult{{
			DocumentID: "doc-1", Label: "claim.rs", Path: "src/claim.rs", Score: 3,
		}}),
	}})

	cmd, buf := newTestCmd(t)
	searchJSON = true
	defer func() { searchJSON = false }()

	err := runSearch(cmd, []string{"claim"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Found": true`)
	assert.Contains(t, buf.String(), `"claim.rs"`)
}

func TestRunSearch_MissingService(t *testing.T) {
	resetServices(t)
	SetServices(Services{})

	cmd, _ := newTestCmd(t)
	err := runSearch(cmd, []string{"manifest"})
	assert.Error(t, err)
}

func TestRunCorpusList(t *testing.T) {
	resetServices(t)
	desc := "C2PA SDK in Rust."
	SetServices(Services{Corpora: &stubCorpusService{
		corpora: []domain.Corpus{{
			ID: "corpus-1", Owner: "contentauth", Name: "c2pa-rs", Branch: "main",
			FileCount: 42, Description: &desc,
		}},
	}})

	cmd, buf := newTestCmd(t)
	err := runCorpusList(cmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "contentauth/c2pa-rs@main")
	assert.Contains(t, out, "42 files")
	assert.Contains(t, out, "C2PA SDK in Rust.")
}

func TestRunCorpusList_Empty(t *testing.T) {
	resetServices(t)
	SetServices(Services{Corpora: &stubCorpusService{}})

	cmd, buf := newTestCmd(t)
	err := runCorpusList(cmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No corpora indexed")
}

func TestRunCorpusRemove(t *testing.T) {
	resetServices(t)
	corpora := &stubCorpusService{}
	SetServices(Services{Corpora: corpora})

	cmd, buf := newTestCmd(t)
	err := runCorpusRemove(cmd, []string{"corpus-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"corpus-1"}, corpora.deleted)
	assert.Contains(t, buf.String(), "Removed corpus corpus-1")
}

func TestRunCorpusRemove_NotFound(t *testing.T) {
	resetServices(t)
	SetServices(Services{Corpora: &stubCorpusService{err: domain.ErrNotFound}})

	cmd, _ := newTestCmd(t)
	err := runCorpusRemove(cmd, []string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "ghp_...wxyz", maskToken("ghp_abcdefghijklmnopqrstuvwxyz"))
}

func TestVersionCommand(t *testing.T) {
	cmd, buf := newTestCmd(t)
	versionCmd.Run(cmd, nil)
	assert.Contains(t, buf.String(), "corpora version")
}
