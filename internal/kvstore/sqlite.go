package kvstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_records (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite persists records in a single table of a local database file
type SQLite struct {
	db    *sql.DB
	clock clock.Clock
}

// Ensure SQLite implements Store
var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database file at path
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Storage(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Storage(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Storage(err, "failed to create kv_records table")
	}

	return &SQLite{db: db, clock: clock.New()}, nil
}

// Get retrieves a record
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.InvalidArgument("key is required")
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("key %s not found", key)
		}
		return nil, errors.Storagef(err, "failed to read %s from sqlite", key)
	}

	return value, nil
}

// Set overwrites a record
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.InvalidArgument("key is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.clock.Now().UnixMilli(),
	)
	if err != nil {
		return errors.Storagef(err, "failed to write %s to sqlite", key)
	}

	return nil
}

// Delete removes a record
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.InvalidArgument("key is required")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_records WHERE key = ?`, key); err != nil {
		return errors.Storagef(err, "failed to delete %s from sqlite", key)
	}

	return nil
}

// Close closes the database handle
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
