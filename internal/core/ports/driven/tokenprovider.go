package driven

import "context"

// TokenProvider supplies the credential for the repository content API.
// Implementations return domain.ErrAuthRequired when no credential is
// configured, which short-circuits an index run before any network call.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}
