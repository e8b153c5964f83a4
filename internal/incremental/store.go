// Package incremental tracks per-template content digests so unchanged
// templates can be skipped on repeated runs. State lives in a SQLite
// database under the project's .gosetta directory.
package incremental

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// CacheFileName is the SQLite database file inside .gosetta.
const CacheFileName = "cache.db"

// Store persists template digests between runs.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens (creating if needed) the digest store.
// Use ":memory:" for an in-memory database in tests.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS template_digests (
		operation TEXT NOT NULL,
		path TEXT NOT NULL,
		digest TEXT NOT NULL,
		run_id TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (operation, path)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Digest fingerprints a template's content together with the language set
// and the catalog files it renders from, so catalog edits and language
// changes invalidate the template.
func Digest(content []byte, languages []string, catalogs ...[]byte) string {
	h := sha256.New()
	h.Write(content)
	for _, l := range languages {
		h.Write([]byte{0})
		h.Write([]byte(l))
	}
	for _, c := range catalogs {
		h.Write([]byte{1})
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Unchanged reports whether the stored digest for (operation, path) matches.
func (s *Store) Unchanged(ctx context.Context, operation, path, digest string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored string
	err := s.db.QueryRowContext(ctx,
		"SELECT digest FROM template_digests WHERE operation = ? AND path = ?",
		operation, path,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query digest: %w", err)
	}
	return stored == digest, nil
}

// Record stores the digest for (operation, path), overwriting any previous run.
func (s *Store) Record(ctx context.Context, operation, path, digest, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO template_digests (operation, path, digest, run_id, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (operation, path) DO UPDATE SET
		   digest = excluded.digest,
		   run_id = excluded.run_id,
		   updated_at = excluded.updated_at`,
		operation, path, digest, runID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record digest: %w", err)
	}
	return nil
}

// Reset drops all recorded digests, forcing full runs.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM template_digests")
	if err != nil {
		return fmt.Errorf("reset digests: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
