package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/credentia-labs/corpora-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the corpus and document store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.corpora/data/corpora.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corpora", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpora.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Save stores or updates a corpus.
func (s *corpusStore) Save(ctx context.Context, corpus domain.Corpus) error {
	if corpus.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO corpora (id, owner, name, branch, file_count, description, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner = excluded.owner,
			name = excluded.name,
			branch = excluded.branch,
			file_count = excluded.file_count,
			description = excluded.description,
			indexed_at = excluded.indexed_at
	`, corpus.ID, corpus.Owner, corpus.Name, corpus.Branch,
		corpus.FileCount, corpus.Description, corpus.IndexedAt)

	if err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}
	return nil
}

// Get retrieves a corpus by ID.
func (s *corpusStore) Get(ctx context.Context, id string) (*domain.Corpus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner, name, branch, file_count, description, indexed_at
		FROM corpora WHERE id = ?
	`, id)

	return scanCorpus(row)
}

// GetBySource retrieves a corpus by its repository coordinates.
func (s *corpusStore) GetBySource(ctx context.Context, owner, name, branch string) (*domain.Corpus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner, name, branch, file_count, description, indexed_at
		FROM corpora WHERE owner = ? AND name = ? AND branch = ?
	`, owner, name, branch)

	return scanCorpus(row)
}

// List returns all corpora ordered by owner and name.
func (s *corpusStore) List(ctx context.Context) ([]domain.Corpus, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner, name, branch, file_count, description, indexed_at
		FROM corpora ORDER BY owner, name, branch
	`)
	if err != nil {
		return nil, fmt.Errorf("querying corpora: %w", err)
	}
	defer rows.Close()

	var corpora []domain.Corpus //nolint:prealloc // size unknown from query
	for rows.Next() {
		var corpus domain.Corpus
		var description sql.NullString
		var indexedAt sql.NullTime
		if err := rows.Scan(&corpus.ID, &corpus.Owner, &corpus.Name, &corpus.Branch,
			&corpus.FileCount, &description, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}
		if description.Valid {
			corpus.Description = &description.String
		}
		if indexedAt.Valid {
			corpus.IndexedAt = indexedAt.Time
		}
		corpora = append(corpora, corpus)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpora: %w", err)
	}

	return corpora, nil
}

// Delete removes a corpus. Documents cascade via the foreign key.
func (s *corpusStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM corpora WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting corpus: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanCorpus scans a single corpus row.
func scanCorpus(row *sql.Row) (*domain.Corpus, error) {
	var corpus domain.Corpus
	var description sql.NullString
	var indexedAt sql.NullTime

	if err := row.Scan(&corpus.ID, &corpus.Owner, &corpus.Name, &corpus.Branch,
		&corpus.FileCount, &description, &indexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning corpus: %w", err)
	}

	if description.Valid {
		corpus.Description = &description.String
	}
	if indexedAt.Valid {
		corpus.IndexedAt = indexedAt.Time
	}

	return &corpus, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert stores or overwrites a document. Remote documents conflict on
// (corpus_id, path) and the existing row keeps its ID, so re-indexing a
// corpus never changes document identities.
func (s *documentStore) Upsert(ctx context.Context, doc domain.IndexedDocument) error {
	if doc.ID == "" || doc.Path == "" {
		return domain.ErrInvalidInput
	}
	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = time.Now().UTC()
	}

	var err error
	if doc.CorpusID != nil {
		_, err = s.store.db.ExecContext(ctx, `
			INSERT INTO indexed_documents (id, corpus_id, path, name, extension, content, size, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(corpus_id, path) DO UPDATE SET
				name = excluded.name,
				extension = excluded.extension,
				content = excluded.content,
				size = excluded.size,
				indexed_at = excluded.indexed_at
		`, doc.ID, *doc.CorpusID, doc.Path, doc.Name, doc.Extension,
			doc.Content, doc.Size, doc.IndexedAt)
	} else {
		_, err = s.store.db.ExecContext(ctx, `
			INSERT INTO indexed_documents (id, corpus_id, path, name, extension, content, size, indexed_at)
			VALUES (?, NULL, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				path = excluded.path,
				name = excluded.name,
				extension = excluded.extension,
				content = excluded.content,
				size = excluded.size,
				indexed_at = excluded.indexed_at
		`, doc.ID, doc.Path, doc.Name, doc.Extension,
			doc.Content, doc.Size, doc.IndexedAt)
	}

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.IndexedDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, corpus_id, path, name, extension, content, size, indexed_at
		FROM indexed_documents WHERE id = ?
	`, id)

	var doc domain.IndexedDocument
	var corpusID sql.NullString
	var indexedAt sql.NullTime
	if err := row.Scan(&doc.ID, &corpusID, &doc.Path, &doc.Name, &doc.Extension,
		&doc.Content, &doc.Size, &indexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if corpusID.Valid {
		doc.CorpusID = &corpusID.String
	}
	if indexedAt.Valid {
		doc.IndexedAt = indexedAt.Time
	}

	return &doc, nil
}

// ListByCorpus returns all documents of one corpus.
func (s *documentStore) ListByCorpus(ctx context.Context, corpusID string) ([]domain.IndexedDocument, error) {
	return s.queryDocuments(ctx, `
		SELECT id, corpus_id, path, name, extension, content, size, indexed_at
		FROM indexed_documents WHERE corpus_id = ?
	`, corpusID)
}

// ListRemote returns all remote documents, optionally filtered to a set
// of corpora.
func (s *documentStore) ListRemote(ctx context.Context, corpusIDs []string) ([]domain.IndexedDocument, error) {
	if len(corpusIDs) == 0 {
		return s.queryDocuments(ctx, `
			SELECT id, corpus_id, path, name, extension, content, size, indexed_at
			FROM indexed_documents WHERE corpus_id IS NOT NULL
		`)
	}

	placeholders := strings.Repeat("?,", len(corpusIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(corpusIDs))
	for i, id := range corpusIDs {
		args[i] = id
	}

	return s.queryDocuments(ctx, fmt.Sprintf(`
		SELECT id, corpus_id, path, name, extension, content, size, indexed_at
		FROM indexed_documents WHERE corpus_id IN (%s)
	`, placeholders), args...)
}

// ListLocal returns all local upload documents.
func (s *documentStore) ListLocal(ctx context.Context) ([]domain.IndexedDocument, error) {
	return s.queryDocuments(ctx, `
		SELECT id, corpus_id, path, name, extension, content, size, indexed_at
		FROM indexed_documents WHERE corpus_id IS NULL
	`)
}

// maxBindVars bounds placeholders per statement, staying well under
// SQLite's bind-variable limit for large corpora.
const maxBindVars = 500

// DeleteByCorpusExcept removes documents of a corpus whose paths are not
// in keep and returns the number of rows removed. The keep set is
// resolved in Go and the deletes are chunked, so the keep list may be
// arbitrarily large.
func (s *documentStore) DeleteByCorpusExcept(ctx context.Context, corpusID string, keep []string) (int, error) {
	kept := make(map[string]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}

	doomed, err := s.stalePaths(ctx, corpusID, kept)
	if err != nil {
		return 0, err
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning prune transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for start := 0; start < len(doomed); start += maxBindVars {
		end := start + maxBindVars
		if end > len(doomed) {
			end = len(doomed)
		}
		chunk := doomed[start:end]

		placeholders := strings.Repeat("?,", len(chunk))
		placeholders = placeholders[:len(placeholders)-1]
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		query := fmt.Sprintf("DELETE FROM indexed_documents WHERE id IN (%s)", placeholders)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("pruning documents: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return len(doomed), nil
}

// stalePaths returns the IDs of the corpus's documents whose paths are
// not in the kept set.
func (s *documentStore) stalePaths(ctx context.Context, corpusID string, kept map[string]bool) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, path FROM indexed_documents WHERE corpus_id = ?", corpusID)
	if err != nil {
		return nil, fmt.Errorf("listing corpus documents: %w", err)
	}
	defer rows.Close()

	var doomed []string
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		if !kept[path] {
			doomed = append(doomed, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus documents: %w", err)
	}
	return doomed, nil
}

// Delete removes a single document by ID.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM indexed_documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// queryDocuments runs a document query and scans all rows.
func (s *documentStore) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.IndexedDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.IndexedDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.IndexedDocument
		var corpusID sql.NullString
		var indexedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &corpusID, &doc.Path, &doc.Name, &doc.Extension,
			&doc.Content, &doc.Size, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if corpusID.Valid {
			doc.CorpusID = &corpusID.String
		}
		if indexedAt.Valid {
			doc.IndexedAt = indexedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}
