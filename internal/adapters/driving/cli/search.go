package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/keywords"
)

var (
	searchLimit   int
	searchCorpora []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed repositories",
	Long: `Searches the indexed repository content by keyword. The query is
split into keywords; each document is scored on content occurrences
plus filename and path bonuses, and the top results are returned with
a contextual excerpt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchCorpora, "corpus", nil, "restrict search to these corpus IDs")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	kws := keywords.FromQuery(args[0])

	opts := domain.SearchOptions{
		Limit:     resolveLimit(cmd, searchLimit),
		CorpusIDs: searchCorpora,
	}

	resp, err := searchService.SearchRepositories(cmd.Context(), kws, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}
	return outputSearchTable(cmd, resp)
}

// resolveLimit prefers an explicit --limit flag, then the configured
// search.default_limit, then the flag's built-in default.
func resolveLimit(cmd *cobra.Command, flagValue int) int {
	if cmd.Flags().Changed("limit") {
		return flagValue
	}
	if configStore != nil {
		if limit := configStore.GetInt("search.default_limit"); limit > 0 {
			return limit
		}
	}
	return flagValue
}

func outputSearchJSON(cmd *cobra.Command, resp domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp domain.SearchResponse) error {
	if !resp.Found {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range resp.Results {
		cmd.Printf("  [%d] %s (%d)\n", i+1, r.Label, r.Score)
		cmd.Printf("      %s\n", r.Path)
		if r.Excerpt != "" {
			cmd.Printf("      %s\n", r.Excerpt)
		}
		if r.Locator != "" {
			cmd.Printf("      %s\n", r.Locator)
		}
		cmd.Println()
	}

	return nil
}
