// Package sqlite persists provenance metadata: configured reference
// sources, registered artefacts and recorded runs.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bioref-labs/taxref-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.taxref/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".taxref", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// ArtifactStore returns an ArtifactStore interface backed by this store.
func (s *Store) ArtifactStore() driven.ArtifactStore {
	return &artifactStore{store: s}
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

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

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.ReferenceSource) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, name, url, format, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			format = excluded.format,
			category = excluded.category,
			updated_at = excluded.updated_at
	`, source.ID, source.Name, source.URL, string(source.Format), string(source.Category),
		source.CreatedAt, source.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.ReferenceSource, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, url, format, category, created_at, updated_at
		FROM sources WHERE id = ?
	`, id)

	source, err := scanSource(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	return source, nil
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources ordered by ID.
func (s *sourceStore) List(ctx context.Context) ([]domain.ReferenceSource, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, url, format, category, created_at, updated_at
		FROM sources ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.ReferenceSource //nolint:prealloc // size unknown from query
	for rows.Next() {
		source, err := scanSource(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

// scanSource reads one source row via the given scan function.
func scanSource(scan func(...any) error) (*domain.ReferenceSource, error) {
	var (
		source           domain.ReferenceSource
		format, category string
		createdAt        sql.NullTime
		updatedAt        sql.NullTime
	)
	if err := scan(&source.ID, &source.Name, &source.URL, &format, &category,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	source.Format = domain.SourceFormat(format)
	source.Category = domain.SourceCategory(category)
	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}
	return &source, nil
}

// ==================== Artifact Store ====================

// artifactStore implements driven.ArtifactStore.
type artifactStore struct {
	store *Store
}

var _ driven.ArtifactStore = (*artifactStore)(nil)

const artifactColumns = "id, source_id, kind, path, sha256, size_bytes, created_at"

// Save registers an artefact.
func (s *artifactStore) Save(ctx context.Context, artifact domain.Artifact) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, source_id, kind, path, sha256, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, artifact.ID, artifact.SourceID, string(artifact.Kind), artifact.Path,
		artifact.SHA256, artifact.SizeBytes, artifact.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}
	return nil
}

// Get retrieves an artefact by ID.
func (s *artifactStore) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+artifactColumns+" FROM artifacts WHERE id = ?", id)

	artifact, err := scanArtifact(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning artifact: %w", err)
	}
	return artifact, nil
}

// ListBySource returns artefacts derived from a source, newest first.
func (s *artifactStore) ListBySource(ctx context.Context, sourceID string) ([]domain.Artifact, error) {
	return s.list(ctx,
		"SELECT "+artifactColumns+" FROM artifacts WHERE source_id = ? ORDER BY created_at DESC, id DESC",
		sourceID)
}

// ListByKind returns artefacts of one kind, newest first.
func (s *artifactStore) ListByKind(ctx context.Context, kind domain.ArtifactKind) ([]domain.Artifact, error) {
	return s.list(ctx,
		"SELECT "+artifactColumns+" FROM artifacts WHERE kind = ? ORDER BY created_at DESC, id DESC",
		string(kind))
}

// List returns all registered artefacts, newest first.
func (s *artifactStore) List(ctx context.Context) ([]domain.Artifact, error) {
	return s.list(ctx,
		"SELECT "+artifactColumns+" FROM artifacts ORDER BY created_at DESC, id DESC")
}

func (s *artifactStore) list(ctx context.Context, query string, args ...any) ([]domain.Artifact, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact //nolint:prealloc // size unknown from query
	for rows.Next() {
		artifact, err := scanArtifact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		artifacts = append(artifacts, *artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return artifacts, nil
}

// scanArtifact reads one artifact row via the given scan function.
func scanArtifact(scan func(...any) error) (*domain.Artifact, error) {
	var (
		artifact  domain.Artifact
		kind      string
		createdAt sql.NullTime
	)
	if err := scan(&artifact.ID, &artifact.SourceID, &kind, &artifact.Path,
		&artifact.SHA256, &artifact.SizeBytes, &createdAt); err != nil {
		return nil, err
	}
	artifact.Kind = domain.ArtifactKind(kind)
	if createdAt.Valid {
		artifact.CreatedAt = createdAt.Time
	}
	return &artifact, nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save records a completed run.
func (s *runStore) Save(ctx context.Context, run domain.Run) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, command, started_at, finished_at, status, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Command, run.StartedAt, run.FinishedAt, string(run.Status), run.Detail)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// List returns recorded runs, newest first.
func (s *runStore) List(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, command, started_at, finished_at, status, detail
		FROM runs ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			run                  domain.Run
			status               string
			startedAt, finishedAt sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Command, &startedAt, &finishedAt, &status, &run.Detail); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Status = domain.RunStatus(status)
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
