package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// githubTokenKey is the config key holding the GitHub PAT.
const githubTokenKey = "github.token"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage GitHub authentication",
	Long: `Store and inspect the GitHub personal access token used to crawl
repositories.

The token needs read access to the repositories you want to index. It
is stored in the config file with restricted permissions; the
CORPORA_GITHUB_TOKEN environment variable overrides it.

Examples:
  corpora auth set          # prompts for the token without echo
  corpora auth show`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a GitHub personal access token",
	RunE:  runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured token (masked)",
	RunE:  runAuthShow,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("GitHub personal access token: ")
	token := readPassword()
	cmd.Println()

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token must not be empty")
	}

	if err := configStore.Set(githubTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	cmd.Println("Token stored.")
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	token := configStore.GetString(githubTokenKey)
	if token == "" {
		cmd.Println("No token configured. Run 'corpora auth set'.")
		return nil
	}

	cmd.Printf("Token: %s\n", maskToken(token))
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
