// Package cache provides tenant- and operation-scoped caching for
// external feed results, with deterministic key derivation and
// per-operation TTL policy.
package cache

import (
	"context"
	"time"
)

// Backend is the minimal contract a backing store must satisfy. Backends
// are assumed shared and safe for concurrent use; this package adds no
// locking of its own.
type Backend interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PatternDeleter is an optional backend capability. Stores check for it
// once at construction; backends without it make pattern invalidation a
// logged no-op instead of an error.
type PatternDeleter interface {
	DeleteMatched(ctx context.Context, pattern string) error
}
