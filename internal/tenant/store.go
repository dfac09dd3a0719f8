package tenant

import (
	"context"
	"fmt"
	"sync"
)

// Store resolves tenants by ID. Tenant persistence is owned elsewhere;
// this layer only needs read access.
type Store interface {
	Get(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context) []string
}

// ConfigStore is a Store backed by the tenants block of the application
// configuration file. Safe for concurrent readers.
type ConfigStore struct {
	tenants map[string]*Tenant
	mu      sync.RWMutex
}

func NewConfigStore(tenants []*Tenant) *ConfigStore {
	byID := make(map[string]*Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}
	return &ConfigStore{tenants: byID}
}

func (s *ConfigStore) Get(ctx context.Context, id string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %q not found", id)
	}
	return t, nil
}

func (s *ConfigStore) List(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.tenants))
	for id := range s.tenants {
		ids = append(ids, id)
	}
	return ids
}
