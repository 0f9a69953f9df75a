package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates the repository or its tree could not
	// be fetched. Aborts the whole index run before any writes.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrAuthRequired indicates no credential is configured for the
	// content API. Raised before any network call is made.
	ErrAuthRequired = errors.New("authentication required")

	// ErrFileFetchFailed indicates a single file could not be fetched or
	// decoded. Recorded and skipped; never aborts a batch.
	ErrFileFetchFailed = errors.New("file fetch failed")

	// ErrPersistenceFailed indicates a storage write error. Propagates
	// and aborts remaining work for the corpus.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrRateLimited indicates the content API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnsupportedType indicates an unknown upload file type.
	ErrUnsupportedType = errors.New("unsupported type")
)
