package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process Cache with per-entry expiry.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a MemoryCache whose entries live for defaultTTL
// unless Set is given another duration.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

// Set implements Cache. The value is copied.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete implements Cache.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Clear implements Cache.
func (m *MemoryCache) Clear(context.Context) error {
	m.store.Flush()
	return nil
}
