package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"valuation_service/internal/domain/entity"
)

// Memory is a process-local estimate cache with per-entry expiration.
type Memory struct {
	store *gocache.Cache
}

func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{
		store: gocache.New(ttl, cleanupInterval),
	}
}

func (m *Memory) Get(_ context.Context, key string) (entity.Estimate, bool, error) {
	v, found := m.store.Get(key)
	if !found {
		return entity.Estimate{}, false, nil
	}

	estimate, ok := v.(entity.Estimate)
	if !ok {
		m.store.Delete(key)
		return entity.Estimate{}, false, nil
	}

	return estimate, true, nil
}

func (m *Memory) Set(_ context.Context, key string, estimate entity.Estimate) error {
	m.store.Set(key, estimate, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Len() int {
	return m.store.ItemCount()
}
