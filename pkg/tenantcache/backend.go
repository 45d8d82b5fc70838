package tenantcache

import (
	"context"
	"sync"
	"time"
)

// Backend is the shared key-value store underneath the tenant-scoped
// cache. Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value for a physical key, with false when the key
	// is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under a physical key with the given TTL.
	// A non-positive TTL stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a physical key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// memoryBackend is an in-process Backend for tests and single-node use.
type memoryBackend struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryBackend creates an in-memory backend.
func NewMemoryBackend() Backend {
	return &memoryBackend{items: make(map[string]memoryItem)}
}

func (b *memoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	item, ok := b.items[key]
	b.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		b.mu.Lock()
		delete(b.items, key)
		b.mu.Unlock()
		return nil, false, nil
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, true, nil
}

func (b *memoryBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: make([]byte, len(value))}
	copy(item.value, value)
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	b.mu.Lock()
	b.items[key] = item
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	delete(b.items, key)
	b.mu.Unlock()
	return nil
}
