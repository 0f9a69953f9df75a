package driven

import "context"

// BlobStore reads uploaded document bytes by stored path. The upload
// transport itself (HTTP multipart, etc.) is an external collaborator;
// this port only addresses already-stored bytes.
type BlobStore interface {
	// Read returns the bytes stored at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a stored path is readable.
	Exists(ctx context.Context, path string) bool
}
