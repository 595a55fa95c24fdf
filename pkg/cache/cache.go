// Package cache stores extracted imports between runs.
//
// Parsing is the expensive part of an analysis. [Extractor] wraps a
// [source.Extractor] and keys each result by the SHA-256 of the language,
// module path and source text, so an unchanged file is never parsed twice.
//
// Three backends implement [Cache]:
//
//   - [FileCache] stores JSON entries below a directory (CLI default)
//   - [RedisCache] shares entries between machines
//   - [NullCache] disables caching
//
// [source.Extractor]: github.com/matzehuels/cyclegraph/pkg/source.Extractor
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
