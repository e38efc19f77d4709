package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache so every key is prefixed. Clients pointed at
// different backends use separate scopes so their entries never collide.
//
// Example usage:
//
//	prod := cache.NewScoped(c, "https://api.example.com:")
//	staging := cache.NewScoped(c, "https://staging.example.com:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. A nil inner behaves like
// [NullCache].
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Prefix returns the key prefix of this scope.
func (s *Scoped) Prefix() string { return s.prefix }

// Get retrieves a prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the wrapped cache.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
