package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteFile is the database file created under the base path.
const SQLiteFile = "daybook.sqlite"

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLite keeps every key as one row of a kv table.
type SQLite struct {
	db       *sql.DB
	basePath string
}

// NewSQLite opens (and if needed creates) the database under basePath.
func NewSQLite(basePath string) (*SQLite, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(basePath, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLite{db: db, basePath: basePath}, nil
}

func (s *SQLite) Read(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (s *SQLite) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Erase(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context) []string {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: list keys: %v\n", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			fmt.Fprintf(os.Stderr, "store: scan key: %v\n", err)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func (s *SQLite) Location() string {
	return filepath.Join(s.basePath, SQLiteFile)
}

// Watch reports any change to the database files as an invalidation; rows
// cannot be attributed to keys from the filesystem.
func (s *SQLite) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, s.basePath, func(string) string { return "" })
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
