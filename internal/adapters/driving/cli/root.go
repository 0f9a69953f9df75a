// Package cli provides the cobra command tree for the corpora binary.
// Commands receive their collaborators through SetServices before
// Execute runs; a command whose service is missing fails with a clear
// error instead of panicking.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/adapters/driving/mcp"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/credentia-labs/corpora-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Nil checks happen per command.
var (
	indexerService  driving.Indexer
	searchService   driving.SearchService
	documentService driving.DocumentService
	corpusService   driving.CorpusService
	configStore     driven.ConfigStore
	documentReader  mcp.DocumentReader
	uploadsDir      string
)

// Services aggregates everything the command tree needs.
type Services struct {
	Indexer    driving.Indexer
	Search     driving.SearchService
	Documents  driving.DocumentService
	Corpora    driving.CorpusService
	Config     driven.ConfigStore
	Reader     mcp.DocumentReader
	UploadsDir string
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	indexerService = s.Indexer
	searchService = s.Search
	documentService = s.Documents
	corpusService = s.Corpora
	configStore = s.Config
	documentReader = s.Reader
	uploadsDir = s.UploadsDir
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "corpora",
	Short: "Index GitHub repositories and search them by keyword",
	Long: `Corpora indexes the text content of GitHub repositories into a local
SQLite store and serves keyword-ranked search over it, for use as a
retrieval backend by chat assistants and directly from the CLI.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
