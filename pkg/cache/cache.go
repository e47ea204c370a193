// Package cache provides pluggable caching for expensive pipeline stages.
//
// Three backends are available: FileCache for CLI usage, RedisCache for
// server deployments, and NullCache to disable caching entirely. Keys are
// generated through the Keyer interface so callers never concatenate key
// strings by hand.
package cache

import (
	"context"
	"slices"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A ttl of zero means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for a raw HTTP response.
	HTTPKey(namespace, key string) string

	// CatalogKey generates a key for a built catalog, derived from the
	// hash of the raw prerequisite entries.
	CatalogKey(sourceHash string) string

	// OrderKey generates a key for a topological ordering of the catalog
	// identified by catalogHash.
	OrderKey(catalogHash string) string

	// EligibilityKey generates a key for an eligibility result. The
	// completed set is part of the key since different transcripts
	// produce different results.
	EligibilityKey(catalogHash string, completed []string) string
}

// DefaultKeyer implements Keyer with hash-based keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CatalogKey generates a key for catalog caching.
func (k *DefaultKeyer) CatalogKey(sourceHash string) string {
	return "catalog:" + sourceHash
}

// OrderKey generates a key for topological order caching.
func (k *DefaultKeyer) OrderKey(catalogHash string) string {
	return "order:" + catalogHash
}

// EligibilityKey generates a key for eligibility result caching.
// The completed slice is sorted before hashing so callers do not need to
// worry about ordering.
func (k *DefaultKeyer) EligibilityKey(catalogHash string, completed []string) string {
	sorted := slices.Clone(completed)
	slices.Sort(sorted)
	return hashKey("eligible", catalogHash, sorted)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
