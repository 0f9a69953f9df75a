package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/uploads"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the uploads directory and ingest dropped files",
	Long: `Watches a directory and adds any file dropped into it to the local
document collection. Runs until interrupted.

Examples:
  corpora watch
  corpora watch --dir /tmp/drop`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (defaults to the uploads directory)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := watchDir
	if dir == "" {
		dir = uploadsDir
	}
	if dir == "" {
		return errors.New("no watch directory configured")
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)

	watcher := uploads.NewWatcher(dir, documentService)
	err := watcher.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
