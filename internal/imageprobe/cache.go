package imageprobe

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists probe outcomes so a 5-second timeout is paid at most
// once per URL per TTL window. The cache is advisory: deleting the
// database file only costs re-probing.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache creates or opens the probe cache at the given path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening probe cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging probe cache: %w", err)
	}

	c := &Cache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating probe cache: %w", err)
	}
	return c, nil
}

// OpenMemoryCache creates an in-memory probe cache (useful for testing).
func OpenMemoryCache(ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory probe cache: %w", err)
	}
	c := &Cache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating probe cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS probes (
    url TEXT PRIMARY KEY,
    ok INTEGER NOT NULL,
    checked_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_probes_checked ON probes(checked_at);
`

// Get returns the cached outcome for url. found is false when there is
// no entry or the entry has aged out.
func (c *Cache) Get(url string) (ok, found bool) {
	var okInt int
	var checkedAt string
	err := c.db.QueryRow(
		`SELECT ok, checked_at FROM probes WHERE url = ?`, url,
	).Scan(&okInt, &checkedAt)
	if err != nil {
		return false, false
	}
	if c.ttl > 0 {
		// datetime('now') stores UTC wall time.
		when, err := time.ParseInLocation("2006-01-02 15:04:05", checkedAt, time.UTC)
		if err != nil || time.Since(when) > c.ttl {
			return false, false
		}
	}
	return okInt == 1, true
}

// Put records a probe outcome.
func (c *Cache) Put(url string, ok bool) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := c.db.Exec(
		`INSERT INTO probes (url, ok, checked_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(url) DO UPDATE SET ok = excluded.ok, checked_at = excluded.checked_at`,
		url, okInt,
	)
	return err
}

// Purge drops entries older than the TTL.
func (c *Cache) Purge() error {
	if c.ttl <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-c.ttl).UTC().Format("2006-01-02 15:04:05")
	_, err := c.db.Exec(`DELETE FROM probes WHERE checked_at < ?`, cutoff)
	return err
}

// Close releases the underlying database.
func (c *Cache) Close() error { return c.db.Close() }
