// Command corpora indexes GitHub repositories into a local SQLite store
// and serves keyword-ranked search over them, from the CLI or as an MCP
// server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/credentia-labs/corpora-cli/internal/adapters/driven/blob/local"
	configfile "github.com/credentia-labs/corpora-cli/internal/adapters/driven/config/file"
	"github.com/credentia-labs/corpora-cli/internal/adapters/driven/storage/sqlite"
	"github.com/credentia-labs/corpora-cli/internal/adapters/driving/cli"
	"github.com/credentia-labs/corpora-cli/internal/connectors/github"
	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	blobStore, err := local.NewBlobStore(configStore.GetString("uploads_dir"))
	if err != nil {
		return fmt.Errorf("opening uploads: %w", err)
	}

	tokenProvider := configfile.NewTokenProvider(configStore)
	ghClient := github.NewClient(tokenProvider)

	filter := services.DefaultFilter()
	if maxSize := configStore.GetInt("index.max_file_size"); maxSize > 0 {
		filter.MaxFileSize = maxSize
	}

	corpusStore := store.CorpusStore()
	docStore := store.DocumentStore()
	excerptLen := configStore.GetInt("search.excerpt_length")

	locator := func(corpus domain.Corpus, path string) string {
		return github.Locator(corpus.Owner, corpus.Name, corpus.Branch, path)
	}

	cli.SetServices(cli.Services{
		Indexer: services.NewIndexer(
			ghClient, tokenProvider, corpusStore, docStore,
			filter, configStore.GetInt("index.batch_size")),
		Search:     services.NewSearchService(docStore, corpusStore, nil, locator, excerptLen),
		Documents:  services.NewDocumentService(docStore, blobStore, nil, excerptLen),
		Corpora:    services.NewCorpusService(corpusStore),
		Config:     configStore,
		Reader:     docStore,
		UploadsDir: blobStore.Root(),
	})
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}
