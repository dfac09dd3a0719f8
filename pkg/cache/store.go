package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inmofeed/pkg/logger"
	"inmofeed/pkg/metrics"
)

// KeyNamespace separates external feed entries from anything else living
// in the shared backend.
const KeyNamespace = "external_feed"

// Default TTL per operation, used when the tenant config carries no
// cache_ttl_<operation> override.
var defaultTTLs = map[string]time.Duration{
	"search":         time.Hour,
	"property":       24 * time.Hour,
	"similar":        6 * time.Hour,
	"locations":      7 * 24 * time.Hour,
	"property_types": 7 * 24 * time.Hour,
}

const fallbackTTL = time.Hour

// Entry wraps a cached payload with its metadata so raw provider payloads
// are never indistinguishable from cache bookkeeping.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	CachedAt  time.Time       `json:"cached_at"`
	Provider  string          `json:"provider"`
	Operation string          `json:"operation"`
}

// Store is a tenant- and provider-scoped view over a shared Backend.
// Keys follow `<scope>:external_feed:<tenant>:<provider>:<operation>:<hash>`
// and are stable across runs.
type Store struct {
	backend      Backend
	patterns     PatternDeleter
	scope        string
	tenantID     string
	provider     string
	ttlOverrides map[string]time.Duration
}

// NewStore builds a store for one tenant/provider pair. The pattern
// deletion capability is probed here, once, not per call.
func NewStore(backend Backend, scope, tenantID, provider string, ttlOverrides map[string]time.Duration) *Store {
	s := &Store{
		backend:      backend,
		scope:        scope,
		tenantID:     tenantID,
		provider:     provider,
		ttlOverrides: ttlOverrides,
	}
	if pd, ok := backend.(PatternDeleter); ok {
		s.patterns = pd
	}
	return s
}

// Key derives the cache key for an operation and parameter map.
func (s *Store) Key(operation string, params map[string]interface{}) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		s.scope, KeyNamespace, s.tenantID, s.provider, operation, hashParams(params))
}

// TTL resolves the expiry for an operation: tenant override first, then
// the built-in default table.
func (s *Store) TTL(operation string) time.Duration {
	if ttl, ok := s.ttlOverrides[operation]; ok {
		return ttl
	}
	if ttl, ok := defaultTTLs[operation]; ok {
		return ttl
	}
	return fallbackTTL
}

// Fetch returns the cached entry for (operation, params) or, on a miss,
// executes fn, wraps its result with cache metadata and stores it with
// the resolved TTL. Backend read/write failures degrade to pass-through:
// fn still runs and its result is returned.
func (s *Store) Fetch(ctx context.Context, operation string, params map[string]interface{}, fn func(context.Context) (interface{}, error)) (*Entry, error) {
	key := s.Key(operation, params)

	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		logger.GlobalLogger.Errorf("cache read failed for %s: %v", key, err)
	}
	if found {
		var entry Entry
		if err := json.Unmarshal(data, &entry); err == nil {
			metrics.CacheHitsTotal.WithLabelValues(operation).Inc()
			return &entry, nil
		}
		logger.GlobalLogger.Errorf("discarding corrupt cache entry %s", key)
	}
	metrics.CacheMissesTotal.WithLabelValues(operation).Inc()

	result, err := fn(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, NewCacheError("marshal", err, true)
	}

	entry := &Entry{
		Data:      raw,
		CachedAt:  time.Now().UTC(),
		Provider:  s.provider,
		Operation: operation,
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return nil, NewCacheError("marshal", err, true)
	}
	if err := s.backend.Set(ctx, key, encoded, s.TTL(operation)); err != nil {
		logger.GlobalLogger.Errorf("cache write failed for %s: %v", key, err)
	}

	return entry, nil
}

// FetchData is Fetch with the cache metadata stripped: callers get the
// payload bytes only, ready to unmarshal into the operation's type.
func (s *Store) FetchData(ctx context.Context, operation string, params map[string]interface{}, fn func(context.Context) (interface{}, error)) (json.RawMessage, error) {
	entry, err := s.Fetch(ctx, operation, params, fn)
	if err != nil {
		return nil, err
	}
	return entry.Data, nil
}

// Invalidate removes the single entry for (operation, params).
func (s *Store) Invalidate(ctx context.Context, operation string, params map[string]interface{}) error {
	return s.backend.Delete(ctx, s.Key(operation, params))
}

// InvalidateOperation removes every entry for one operation. Requires
// pattern deletion from the backend; degrades to a logged no-op when the
// backend cannot do it.
func (s *Store) InvalidateOperation(ctx context.Context, operation string) error {
	pattern := fmt.Sprintf("%s:%s:%s:%s:%s:*", s.scope, KeyNamespace, s.tenantID, s.provider, operation)
	return s.deleteMatched(ctx, pattern)
}

// InvalidateAll removes every entry this store owns.
func (s *Store) InvalidateAll(ctx context.Context) error {
	pattern := fmt.Sprintf("%s:%s:%s:%s:*", s.scope, KeyNamespace, s.tenantID, s.provider)
	return s.deleteMatched(ctx, pattern)
}

func (s *Store) deleteMatched(ctx context.Context, pattern string) error {
	if s.patterns == nil {
		logger.GlobalLogger.Warnf("cache backend does not support pattern deletion, skipping %s", pattern)
		return nil
	}
	return s.patterns.DeleteMatched(ctx, pattern)
}
