// Package cache stores raw seat-data responses between requests.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared entries for the layout server
//   - [NullCache]: caching disabled
//
// Only backend responses are cached, never built layouts: a layout is always
// recomputed from the seat data it was derived from. Seat availability goes
// stale quickly, so callers should use short TTLs (see [TTLSeats]).
package cache

import (
	"context"
	"time"
)

// TTLSeats is the default lifetime of a cached seat-data response.
const TTLSeats = 30 * time.Second

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
