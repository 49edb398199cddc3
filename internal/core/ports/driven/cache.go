// Package driven defines the interfaces the core services depend on.
// Adapters under internal/adapters/driven implement them.
package driven

import "github.com/starfield-labs/isofetch/internal/core/domain"

// ResultCache stores raw result blobs keyed by a settings fingerprint.
// Blobs are stored exactly as received, compression tag included, so a
// cached result round-trips through the same decompress/parse path as a
// fresh one.
type ResultCache interface {
	// Contains reports whether a result exists for the fingerprint.
	Contains(fingerprint string) (bool, error)

	// Get returns the cached result, or domain.ErrNotFound.
	Get(fingerprint string) (*domain.RawResult, error)

	// Put stores a result, replacing any existing entry.
	Put(fingerprint string, res *domain.RawResult) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(fingerprint string) error

	// Keys returns all stored fingerprints.
	Keys() ([]string, error)
}
