package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mediasort/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated in place.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists the hash cache, run journal, and recorded keeper decisions
// in SQLite. The engine's decisions never depend on store contents; the
// cache only avoids re-hashing unchanged files.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.CatalogPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// LookupHash returns the cached digest for path when size and mtime still
// match; a stale entry reports a miss.
func (s *Store) LookupHash(ctx context.Context, path string, size, mtimeNS int64) (string, bool, error) {
	var digest string
	err := s.db.QueryRowContext(ctx,
		"SELECT digest FROM hash_cache WHERE path = ? AND size = ? AND mtime_ns = ?",
		path, size, mtimeNS,
	).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup hash: %w", err)
	}
	return digest, true, nil
}

// StoreHash upserts the digest for path at the given size and mtime.
func (s *Store) StoreHash(ctx context.Context, path string, size, mtimeNS int64, digest string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO hash_cache (path, size, mtime_ns, digest) VALUES (?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET size = excluded.size, mtime_ns = excluded.mtime_ns, digest = excluded.digest`,
		path, size, mtimeNS, digest,
	)
	if err != nil {
		return fmt.Errorf("store hash: %w", err)
	}
	return nil
}

// RunCounters summarizes a finished run for the journal.
type RunCounters struct {
	MediaFiles      int
	DuplicateGroups int
	PlannedMoves    int
}

// BeginRun inserts a run journal row and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, root string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, root, started_at) VALUES (?, ?, ?)",
		id, root, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run row with its end time and counters.
func (s *Store) FinishRun(ctx context.Context, id string, counters RunCounters) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, media_files = ?, duplicate_groups = ?, planned_moves = ?
         WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		counters.MediaFiles, counters.DuplicateGroups, counters.PlannedMoves, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordKeeper journals the suggested keeper for one duplicate group.
func (s *Store) RecordKeeper(ctx context.Context, runID, digest string, size int64, keeperPath string, discardCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO keeper_decisions (run_id, digest, size, keeper_path, discard_count)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(run_id, digest, size) DO UPDATE SET keeper_path = excluded.keeper_path, discard_count = excluded.discard_count`,
		runID, digest, size, keeperPath, discardCount,
	)
	if err != nil {
		return fmt.Errorf("record keeper: %w", err)
	}
	return nil
}
