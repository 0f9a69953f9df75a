package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/keywords"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage locally uploaded documents",
	Long:  `Add files to the local document collection and search them.`,
}

var docsAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a file to the local document collection",
	Long: `Copies a file into the uploads directory and indexes its content.
The file type is derived from the extension unless --type is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsAdd,
}

var docsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the local document collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsSearch,
}

var (
	docsAddType     string
	docsSearchLimit int
)

func init() {
	docsAddCmd.Flags().StringVar(&docsAddType, "type", "", "file type: text or markdown (derived from extension when omitted)")
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")

	docsCmd.AddCommand(docsAddCmd)
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if uploadsDir == "" {
		return errors.New("uploads directory not configured")
	}

	srcPath := args[0]

	fileType := domain.UploadType(docsAddType)
	if docsAddType == "" {
		fileType = domain.UploadTypeForExtension(strings.ToLower(filepath.Ext(srcPath)))
	}
	if !fileType.Valid() {
		return fmt.Errorf("unsupported file type %q (want text or markdown)", docsAddType)
	}

	stored, err := copyIntoUploads(srcPath, uploadsDir)
	if err != nil {
		return err
	}

	id, err := documentService.Ingest(cmd.Context(), stored, fileType)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Added %s as document %s\n", filepath.Base(srcPath), id)
	return nil
}

func runDocsSearch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	kws := keywords.FromQuery(args[0])

	resp, err := documentService.Search(cmd.Context(), kws, resolveLimit(cmd, docsSearchLimit))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return outputSearchTable(cmd, resp)
}

// copyIntoUploads copies a file into the uploads directory and returns
// the stored file name.
func copyIntoUploads(srcPath, dir string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating uploads directory: %w", err)
	}

	name := filepath.Base(srcPath)
	dstPath := filepath.Join(dir, name)
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copying %s: %w", name, err)
	}
	return name, nil
}
