package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc loads a Mapping from the source identified by key.
type LoadFunc func(ctx context.Context, key string) (Mapping, error)

// cachedMapping is a Mapping with its build time.
type cachedMapping struct {
	mapping Mapping
	built   time.Time
}

// MappingCache keeps loaded mappings for a TTL.
// Concurrent loads of the same key are collapsed into one.
type MappingCache struct {
	ttl  time.Duration
	load LoadFunc

	mu      sync.RWMutex
	entries map[string]cachedMapping
	sf      singleflight.Group
	now     func() time.Time
}

// NewMappingCache creates a cache. A zero TTL disables caching, so every Get loads.
func NewMappingCache(ttl time.Duration, load LoadFunc) *MappingCache {
	return &MappingCache{
		ttl:     ttl,
		load:    load,
		entries: make(map[string]cachedMapping),
		now:     time.Now,
	}
}

func (c *MappingCache) expired(e cachedMapping) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// Get returns the mapping for key, loading it if missing or expired.
// Failed loads are not cached.
func (c *MappingCache) Get(ctx context.Context, key string) (Mapping, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(entry) {
		return entry.mapping, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have finished the load while we waited.
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && !c.expired(entry) {
			return entry.mapping, nil
		}

		mapping, err := c.load(ctx, key)
		if err != nil {
			return mapping, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cachedMapping{mapping: mapping, built: c.now()}
			c.mu.Unlock()
		}
		return mapping, nil
	})

	mapping, _ := result.(Mapping)
	if mapping == nil {
		mapping = Mapping{}
	}
	return mapping, err
}

// Invalidate drops the cached mapping for key.
func (c *MappingCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
