package tenant

import (
	"sync"
	"time"
)

// MappingCache caches hostname-to-alias lookups. Only the alias is ever
// cached: staleness here merely delays visibility of newly provisioned
// or remapped hostnames, it can never leak a suspended tenant because
// liveness is always re-checked against the live Directory record.
type MappingCache interface {
	// Get returns the cached alias for a normalized hostname.
	Get(host string) (string, bool)

	// Set caches the alias for a normalized hostname.
	Set(host, alias string)

	// Delete drops a cached mapping.
	Delete(host string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultMappingCacheSize bounds the in-memory mapping cache.
const DefaultMappingCacheSize = 1000

// DefaultMappingTTL is the default lifetime of a cached mapping.
const DefaultMappingTTL = 5 * time.Minute

type mappingItem struct {
	alias     string
	expiresAt time.Time
}

// inMemoryMappingCache is a bounded TTL cache with LRU eviction and a
// background cleanup goroutine.
type inMemoryMappingCache struct {
	mu      sync.Mutex
	items   map[string]mappingItem
	lru     []string
	maxSize int
	ttl     time.Duration
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewMappingCache creates an in-memory mapping cache with the given TTL
// and size bound. Non-positive arguments fall back to the defaults.
func NewMappingCache(ttl time.Duration, maxSize int) MappingCache {
	if ttl <= 0 {
		ttl = DefaultMappingTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMappingCacheSize
	}

	c := &inMemoryMappingCache{
		items:   make(map[string]mappingItem),
		lru:     make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go c.cleanup()

	return c
}

func (c *inMemoryMappingCache) Get(host string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[host]
	if !exists {
		return "", false
	}

	if time.Now().After(item.expiresAt) {
		delete(c.items, host)
		c.removeLRU(host)
		return "", false
	}

	c.updateLRU(host)
	return item.alias, true
}

func (c *inMemoryMappingCache) Set(host, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[host]; !exists && len(c.items) >= c.maxSize {
		if len(c.lru) > 0 {
			evict := c.lru[0]
			delete(c.items, evict)
			c.lru = c.lru[1:]
		}
	}

	c.items[host] = mappingItem{
		alias:     alias,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.updateLRU(host)
}

func (c *inMemoryMappingCache) Delete(host string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, host)
	c.removeLRU(host)
}

func (c *inMemoryMappingCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *inMemoryMappingCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for host, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, host)
			c.removeLRU(host)
		}
	}
}

func (c *inMemoryMappingCache) updateLRU(host string) {
	for i, h := range c.lru {
		if h == host {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append(c.lru, host)
}

func (c *inMemoryMappingCache) removeLRU(host string) {
	for i, h := range c.lru {
		if h == host {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			return
		}
	}
}

func (c *inMemoryMappingCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noopMappingCache disables mapping caching; every resolution consults
// the HostMapper directly.
type noopMappingCache struct{}

// NewNoopMappingCache returns a cache that never stores anything.
func NewNoopMappingCache() MappingCache {
	return noopMappingCache{}
}

func (noopMappingCache) Get(host string) (string, bool) { return "", false }
func (noopMappingCache) Set(host, alias string)         {}
func (noopMappingCache) Delete(host string)             {}
func (noopMappingCache) Close() error                   { return nil }
