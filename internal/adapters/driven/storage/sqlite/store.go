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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
	"github.com/custodia-labs/quarry/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Suffixes that select this store over the JSON snapshot.
var Suffixes = []string{".db", ".sqlite"}

// Store is a SQLite-backed index store.
type Store struct {
	db   *sql.DB
	path string
}

// Handles reports whether path names a SQLite index.
func Handles(path string) bool {
	for _, suffix := range Suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// NewStore opens or creates the database at path and applies migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
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

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
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

// Save replaces the stored index in a single transaction.
func (s *Store) Save(ctx context.Context, idx *domain.Index) (err error) {
	if idx == nil {
		return fmt.Errorf("%w: nil index", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshot (id, created_at) VALUES (1, ?)",
		idx.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (seq, id, title, path, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range idx.Chunks {
		if _, err = stmt.ExecContext(ctx, i, c.ID, c.Title, c.Path, c.Text); err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logger.Debug("sqlite: wrote %d chunks to %s", len(idx.Chunks), s.path)
	return nil
}

// Load reads the index. Any failure, or an index with no chunks, reports
// the index as absent.
func (s *Store) Load(ctx context.Context) (*domain.Index, bool) {
	idx, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("sqlite: no index in %s", s.path)
		} else {
			logger.Warn("sqlite: %v", err)
		}
		return nil, false
	}
	if idx.IsEmpty() {
		return nil, false
	}
	return idx, true
}

func (s *Store) read(ctx context.Context) (*domain.Index, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback()

	var created string
	if err := tx.QueryRowContext(ctx, "SELECT created_at FROM snapshot WHERE id = 1").Scan(&created); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT id, title, path, text FROM chunks ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	idx := &domain.Index{CreatedAt: createdAt}
	for rows.Next() {
		var c domain.Chunk
		if err := rows.Scan(&c.ID, &c.Title, &c.Path, &c.Text); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		idx.Chunks = append(idx.Chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}
	return idx, nil
}

// Summarize counts chunks and distinct paths without loading chunk text.
func (s *Store) Summarize(ctx context.Context) domain.IndexSummary {
	var chunks, docs int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COUNT(DISTINCT path) FROM chunks").Scan(&chunks, &docs)
	if err != nil {
		logger.Warn("sqlite: summarize: %v", err)
		return domain.IndexSummary{}
	}
	if chunks == 0 {
		return domain.IndexSummary{}
	}
	return domain.IndexSummary{Present: true, Chunks: chunks, Docs: docs}
}
