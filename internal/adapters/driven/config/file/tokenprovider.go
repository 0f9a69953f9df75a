package file

import (
	"context"
	"os"
	"strings"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// tokenKey is the config key holding the GitHub personal access token.
const tokenKey = "github.token"

// tokenEnvVar overrides the configured token when set.
const tokenEnvVar = "CORPORA_GITHUB_TOKEN"

// Ensure TokenProvider implements the interface.
var _ driven.TokenProvider = (*TokenProvider)(nil)

// TokenProvider resolves the GitHub token from the environment or the
// config store. The environment variable wins so CI runs never need a
// config file.
type TokenProvider struct {
	config driven.ConfigStore
}

// NewTokenProvider creates a token provider backed by the config store.
func NewTokenProvider(config driven.ConfigStore) *TokenProvider {
	return &TokenProvider{config: config}
}

// GetToken returns the configured token, or domain.ErrAuthRequired when
// none is set.
func (p *TokenProvider) GetToken(_ context.Context) (string, error) {
	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		return token, nil
	}

	token := strings.TrimSpace(p.config.GetString(tokenKey))
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}
