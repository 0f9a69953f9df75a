package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

var (
	indexBranch  string
	indexTimeout time.Duration
)

var indexCmd = &cobra.Command{
	Use:   "index [owner/repo]",
	Short: "Index a GitHub repository",
	Long: `Crawls the file tree of a GitHub repository, fetches its indexable
text content and stores it locally for keyword search.

Re-running against the same repository refreshes the stored content and
removes files that no longer exist upstream.

Examples:
  corpora index contentauth/c2pa-rs
  corpora index contentauth/c2pa-js --branch develop
  corpora index contentauth/c2pa-rs --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexBranch, "branch", "b", "", "branch to index (default branch when omitted)")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 5*time.Minute, "maximum duration for the index run")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	desc, err := parseRepoArg(args[0])
	if err != nil {
		return err
	}
	desc.Branch = indexBranch

	ctx, cancel := context.WithTimeout(cmd.Context(), indexTimeout)
	defer cancel()

	cmd.Printf("Indexing %s/%s...\n", desc.Owner, desc.Name)

	report, err := indexerService.IndexRepository(ctx, desc)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthRequired):
			return errors.New("no GitHub token configured, run 'corpora auth set' first")
		case errors.Is(err, domain.ErrSourceUnavailable):
			return fmt.Errorf("repository unavailable: %w", err)
		default:
			return fmt.Errorf("index failed: %w", err)
		}
	}

	cmd.Printf("Indexed %d files (%d skipped, %d pruned)\n",
		report.IndexedCount, report.SkippedCount, report.PrunedCount)
	cmd.Printf("Corpus: %s\n", report.CorpusID)
	return nil
}

// parseRepoArg splits an owner/repo argument.
func parseRepoArg(arg string) (domain.SourceDescriptor, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.SourceDescriptor{}, fmt.Errorf("expected owner/repo, got %q", arg)
	}
	return domain.SourceDescriptor{Owner: parts[0], Name: parts[1]}, nil
}
