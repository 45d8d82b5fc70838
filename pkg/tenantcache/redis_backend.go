package tenantcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisBackend adapts a go-redis client to the Backend interface.
type redisBackend struct {
	client redis.UniversalClient
}

// NewRedisBackend wraps a connected Redis client as a cache Backend.
func NewRedisBackend(client redis.UniversalClient) Backend {
	if client == nil {
		panic("tenantcache: redis client cannot be nil")
	}
	return &redisBackend{client: client}
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Join(ErrBackendUnavailable, err)
	}
	return value, true, nil
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Join(ErrBackendUnavailable, err)
	}
	return nil
}

func (b *redisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrBackendUnavailable, err)
	}
	return nil
}
