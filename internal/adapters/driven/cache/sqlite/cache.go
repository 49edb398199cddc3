// Package sqlite provides a SQLite-backed result cache. Raw result blobs
// are stored as received from the CMD service, keyed by the settings
// fingerprint that produced them.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResultCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	fingerprint TEXT PRIMARY KEY,
	compression TEXT NOT NULL,
	body        BLOB NOT NULL,
	created_at  TEXT NOT NULL
);`

// Cache is a SQLite-backed ResultCache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the cache database in dataDir.
// If dataDir is empty, defaults to ~/.isofetch.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".isofetch")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Contains reports whether a result exists for the fingerprint.
func (c *Cache) Contains(fingerprint string) (bool, error) {
	var one int
	err := c.db.QueryRow(
		"SELECT 1 FROM results WHERE fingerprint = ?", fingerprint).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the cached result, or domain.ErrNotFound.
func (c *Cache) Get(fingerprint string) (*domain.RawResult, error) {
	var compression string
	var body []byte
	err := c.db.QueryRow(
		"SELECT compression, body FROM results WHERE fingerprint = ?",
		fingerprint).Scan(&compression, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result %s", domain.ErrNotFound, fingerprint)
	}
	if err != nil {
		return nil, err
	}
	return &domain.RawResult{
		Body:        body,
		Compression: domain.Compression(compression),
	}, nil
}

// Put stores a result, replacing any existing entry.
func (c *Cache) Put(fingerprint string, res *domain.RawResult) error {
	_, err := c.db.Exec(
		`INSERT INTO results (fingerprint, compression, body, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
		   compression = excluded.compression,
		   body        = excluded.body,
		   created_at  = excluded.created_at`,
		fingerprint, string(res.Compression), res.Body,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (c *Cache) Delete(fingerprint string) error {
	_, err := c.db.Exec("DELETE FROM results WHERE fingerprint = ?", fingerprint)
	return err
}

// Keys returns all stored fingerprints.
func (c *Cache) Keys() ([]string, error) {
	rows, err := c.db.Query("SELECT fingerprint FROM results ORDER BY fingerprint")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
