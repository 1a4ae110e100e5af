// Package refcache holds the persistent client-side cache and the
// reference-data loader built on top of it. Cached entries survive
// navigation within a session and are invalidated wholesale on explicit
// refresh or forced refetch.
package refcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed key/value store for JSON payloads.
type Cache struct {
	db *sqlx.DB
}

// migrations are applied in order; each entry bumps the schema version.
var migrations = []struct {
	version int
	sql     string
}{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);
			CREATE TABLE IF NOT EXISTS cache_entries (
				key        TEXT PRIMARY KEY,
				payload    TEXT NOT NULL,
				fetched_at TIMESTAMP NOT NULL
			);
			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}

// Open opens (or creates) the cache database at dbPath, enables WAL mode,
// and runs any pending schema migrations. Use ":memory:" in tests.
func Open(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	// WAL for concurrent reads while a write is pending.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Get loads and unmarshals the payload stored under key into dest.
// ok is false on a cache miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var payload string
	err := c.db.GetContext(ctx, &payload,
		"SELECT payload FROM cache_entries WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache entry %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("unmarshaling cache entry %q: %w", key, err)
	}
	return true, nil
}

// Put marshals value and stores it under key, replacing any prior entry.
func (c *Cache) Put(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache entry %q: %w", key, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cache_entries (key, payload, fetched_at)
		VALUES (?, ?, ?)`,
		key, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %q: %w", key, err)
	}
	return nil
}

// InvalidateAll drops every cached entry. Invalidation is wholesale: there
// is no per-key expiry policy.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	return nil
}
