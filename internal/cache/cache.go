// Package cache keeps fetched item descriptions in a local SQLite database so
// revisiting an item in a later search does not hit the seeker again.
package cache

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

// Cache is a description cache keyed by item.Item.Key.
type Cache struct {
	db *sql.DB
}

// Open opens (creating when missing) the cache database at path.
func Open(ctx context.Context, path string) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure cache: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS descriptions (
		key TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		fetched_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Lookup returns the cached description for key.
func (c *Cache) Lookup(ctx context.Context, key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	var desc string
	err := c.db.QueryRowContext(ctx, `SELECT description FROM descriptions WHERE key = ?`, key).Scan(&desc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %q: %w", key, err)
	}
	return desc, true, nil
}

// Put stores or replaces the description for key.
func (c *Cache) Put(ctx context.Context, key, description string) error {
	if c == nil {
		return nil
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO descriptions (key, description, fetched_at_unixms)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET description = excluded.description, fetched_at_unixms = excluded.fetched_at_unixms`,
		key, description, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
