package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage indexed corpora",
	Long:  `List indexed repository corpora and remove ones no longer needed.`,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed corpora",
	RunE:  runCorpusList,
}

var corpusRemoveCmd = &cobra.Command{
	Use:   "remove [corpus-id]",
	Short: "Remove a corpus and its documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusRemove,
}

func init() {
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusRemoveCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	corpora, err := corpusService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list corpora: %w", err)
	}

	if len(corpora) == 0 {
		cmd.Println("No corpora indexed. Run 'corpora index owner/repo' first.")
		return nil
	}

	for _, c := range corpora {
		cmd.Printf("%s  %s  (%d files)\n", c.ID, c.Slug(), c.FileCount)
		if c.Description != nil {
			cmd.Printf("    %s\n", *c.Description)
		}
		if !c.IndexedAt.IsZero() {
			cmd.Printf("    indexed %s\n", c.IndexedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func runCorpusRemove(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	id := args[0]
	if err := corpusService.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("corpus not found: %s", id)
		}
		return fmt.Errorf("failed to remove corpus: %w", err)
	}

	cmd.Printf("Removed corpus %s\n", id)
	return nil
}
