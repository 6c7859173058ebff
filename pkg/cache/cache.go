// Package cache stores solved grids and rendered artifacts between runs.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything and is the default for tests.
//   - [FileCache] keeps entries as JSON files on disk for CLI usage.
//   - [RedisCache] shares entries between server replicas.
//
// Keys are built by a [Keyer] so every component names entries the same
// way. [ScopedKeyer] prefixes keys to separate namespaces in a shared store.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// SnapshotKey names the walked grid for an input.
	SnapshotKey(inputHash string) string

	// ResultKey names a solve result with its rendered artifacts.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts holds the solve options that change the cached result.
type ResultKeyOpts struct {
	Formats  []string `json:"formats"`
	Detailed bool     `json:"detailed,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SnapshotKey returns "snapshot:<inputHash>".
func (DefaultKeyer) SnapshotKey(inputHash string) string {
	return "snapshot:" + inputHash
}

// ResultKey hashes the input hash together with opts.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
