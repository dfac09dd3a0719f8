package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryBackend is a process-local Backend for development and tests.
// It supports pattern deletion, so invalidation behaves the same as on
// Redis, just without cross-process sharing.
type MemoryBackend struct {
	store map[string]memoryEntry
	mu    sync.RWMutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		store: make(map[string]memoryEntry),
	}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.store[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.store, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{data: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.store[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.store, key)
	m.mu.Unlock()
	return nil
}

// DeleteMatched removes every key matching the glob pattern.
func (m *MemoryBackend) DeleteMatched(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.store {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.store, key)
		}
	}
	return nil
}

// Len reports the number of live entries, expired ones included until
// their next read.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
