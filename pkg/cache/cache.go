package cache

import (
	"sync"
	"time"
)

type entry struct {
	val []byte
	exp time.Time
}

// MemoryCache is a TTL map for rendered payloads.
type MemoryCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{m: make(map[string]entry), ttl: ttl}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || time.Now().After(e.exp) {
		return nil, false
	}
	return e.val, true
}

func (c *MemoryCache) Set(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{val: val, exp: time.Now().Add(c.ttl)}
}

// Flush drops every entry. Called after any mutation so cached views never
// outlive the collection state they were rendered from.
func (c *MemoryCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]entry)
}
