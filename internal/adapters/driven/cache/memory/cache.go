// Package memory provides an in-memory result cache for tests and
// ephemeral runs where nothing should touch disk.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResultCache = (*Cache)(nil)

// Cache is a map-backed ResultCache.
type Cache struct {
	mu      sync.RWMutex
	results map[string]*domain.RawResult
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{results: make(map[string]*domain.RawResult)}
}

// Contains reports whether a result exists for the fingerprint.
func (c *Cache) Contains(fingerprint string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.results[fingerprint]
	return ok, nil
}

// Get returns the cached result, or domain.ErrNotFound.
func (c *Cache) Get(fingerprint string) (*domain.RawResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.results[fingerprint]
	if !ok {
		return nil, fmt.Errorf("%w: result %s", domain.ErrNotFound, fingerprint)
	}
	return res, nil
}

// Put stores a result, replacing any existing entry.
func (c *Cache) Put(fingerprint string, res *domain.RawResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[fingerprint] = res
	return nil
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (c *Cache) Delete(fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, fingerprint)
	return nil
}

// Keys returns all stored fingerprints in sorted order.
func (c *Cache) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.results))
	for k := range c.results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
