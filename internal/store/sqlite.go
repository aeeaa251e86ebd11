// Package store keeps a local SQLite cache of upstream responses.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Cache stores raw response bodies by key with an expiry.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Stats summarises the cache content.
type Stats struct {
	Entries int `json:"entries"`
	Expired int `json:"expired"`
	Bytes   int `json:"bytes"`
}

// OpenCache opens the SQLite database at path, creating its directory, and
// configures WAL mode.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrap(err, "sqlite: create cache dir")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// busy_timeout and synchronous are per connection.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &Cache{db: db, now: time.Now}, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS response_cache (
	id         TEXT PRIMARY KEY,
	cache_key  TEXT NOT NULL UNIQUE,
	body       BLOB NOT NULL,
	stored_at  INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_cache_expires_at ON response_cache(expires_at);
`

// Migrate creates the cache table.
func (c *Cache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, cacheMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the body stored under key, if present and not expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT body FROM response_cache WHERE cache_key = ? AND expires_at > ?`,
		key, c.now().UnixMilli(),
	)

	var body []byte
	err := row.Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: get cached response")
	}
	return body, true, nil
}

// Set stores body under key for ttl, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	now := c.now()
	if body == nil {
		body = []byte{}
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO response_cache (id, cache_key, body, stored_at, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   body = excluded.body, stored_at = excluded.stored_at, expires_at = excluded.expires_at`,
		uuid.New().String(), key, body, now.UnixMilli(), now.Add(ttl).UnixMilli(),
	)
	return eris.Wrap(err, "sqlite: set cached response")
}

// DeleteExpired removes expired entries and returns how many were removed.
func (c *Cache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM response_cache WHERE expires_at <= ?`, c.now().UnixMilli(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired responses")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM response_cache`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: clear cache")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// Stats counts live and expired entries.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(LENGTH(body)), 0)
		 FROM response_cache`,
		c.now().UnixMilli(),
	).Scan(&st.Entries, &st.Expired, &st.Bytes)
	return st, eris.Wrap(err, "sqlite: cache stats")
}
