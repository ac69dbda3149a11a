package student

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/zephyr/internal/domain"
)

type cachedSnapshot struct {
	version  string
	state    *domain.ProgressionState
	cachedAt time.Time
}

// sessionCache keeps the authoritative snapshot of every active student.
// Entries are never mutated; a mutation stores a new snapshot.
type sessionCache struct {
	lru *expirable.LRU[string, *cachedSnapshot]
}

func newSessionCache(size int, ttl time.Duration) *sessionCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &sessionCache{
		lru: expirable.NewLRU[string, *cachedSnapshot](size, nil, ttl),
	}
}

func (c *sessionCache) Get(identity string) (*domain.ProgressionState, bool) {
	entry, found := c.lru.Get(identity)
	if !found {
		return nil, false
	}
	if entry.version != CacheSchemaVersion {
		c.lru.Remove(identity)
		return nil, false
	}
	return entry.state, true
}

func (c *sessionCache) Set(identity string, state *domain.ProgressionState) {
	c.lru.Add(identity, &cachedSnapshot{
		version:  CacheSchemaVersion,
		state:    state,
		cachedAt: time.Now(),
	})
}

func (c *sessionCache) Invalidate(identity string) {
	c.lru.Remove(identity)
}

func (c *sessionCache) Len() int {
	return c.lru.Len()
}
