package rowcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed blob cache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Stats summarizes cache contents.
type Stats struct {
	Path    string
	Entries int64
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

// Open creates or opens the cache database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("rowcache: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("rowcache: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps pragmas applied to every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the blob stored under key. A miss is (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM entries WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rowcache get: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE entries SET accessed_at = ? WHERE key = ?`, s.now().UnixNano(), key); err != nil {
		return nil, false, fmt.Errorf("rowcache touch: %w", err)
	}
	return data, true, nil
}

// Put stores data under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("rowcache put: empty key")
	}
	if data == nil {
		data = []byte{}
	}
	now := s.now().UnixNano()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (key, data, size, created_at, accessed_at) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET data = excluded.data, size = excluded.size,
             created_at = excluded.created_at, accessed_at = excluded.accessed_at`,
		key, data, len(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("rowcache put: %w", err)
	}
	return nil
}

// Stats reports entry count, payload bytes, and the creation time range.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path}
	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(size), 0), MIN(created_at), MAX(created_at) FROM entries`,
	).Scan(&stats.Entries, &stats.Bytes, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("rowcache stats: %w", err)
	}
	if oldest.Valid {
		stats.Oldest = time.Unix(0, oldest.Int64)
	}
	if newest.Valid {
		stats.Newest = time.Unix(0, newest.Int64)
	}
	return stats, nil
}

// Prune removes entries created more than olderThan ago and returns the
// number removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("rowcache prune: negative age %s", olderThan)
	}
	cutoff := s.now().Add(-olderThan).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("rowcache prune: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every entry and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("rowcache clear: %w", err)
	}
	return res.RowsAffected()
}
