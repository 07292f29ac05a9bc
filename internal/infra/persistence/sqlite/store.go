// Package sqlite persists the snippet collection as a JSON payload inside an
// embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"snip/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	// DefaultFileName is the database name under the snip config directory.
	DefaultFileName = "snippets.db"
	snippetsBucket  = "snippets"
)

// Store snapshots the full collection into one row of the state table.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path and ensures the state table exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, &domain.IOError{Op: "resolve config dir", Err: err}
		}
		path = filepath.Join(dir, "snip", DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, &domain.IOError{Op: "create dirs", Path: filepath.Dir(path), Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.IOError{Op: "open sqlite", Path: path, Err: err}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, &domain.IOError{Op: "create state table", Path: path, Err: err}
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Driver() domain.StorageDriver { return domain.StorageSQLite }

// Location names the bucket inside the database for error messages.
func (s *Store) Location() string { return s.path + "#" + snippetsBucket }

// Load decodes the snippets bucket. A missing row or empty payload yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Snippet, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, snippetsBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Snippet{}, nil
	}
	if err != nil {
		return nil, &domain.IOError{Op: "select state", Path: s.path, Err: err}
	}
	if len(payload) == 0 {
		return []domain.Snippet{}, nil
	}
	var out []domain.Snippet
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &domain.CorruptStoreError{Source: s.Location(), Err: err}
	}
	if out == nil {
		return nil, &domain.CorruptStoreError{Source: s.Location(), Err: errors.New("payload is not a snippet array")}
	}
	for i := range out {
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out, nil
}

// Save upserts the snippets bucket inside a transaction.
func (s *Store) Save(ctx context.Context, snippets []domain.Snippet) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.CloneSnippets(snippets)
	if out == nil {
		out = []domain.Snippet{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode snippets: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.IOError{Op: "begin tx", Path: s.path, Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, snippetsBucket, data); err != nil {
		return &domain.IOError{Op: "upsert " + snippetsBucket, Path: s.path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.IOError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
