package cache

import (
	"context"
	"errors"
	"time"

	pkgredis "MarketIntel/pkg/redis"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries under the client's "cache" namespace.
type RedisCache struct {
	cli *pkgredis.Client
}

func NewRedisCache(cli *pkgredis.Client) *RedisCache {
	return &RedisCache{cli: cli}
}

var _ BytesCache = (*RedisCache)(nil)

func (r *RedisCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.cli.Redis().Get(ctx, r.cli.Key("cache", key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.cli.Redis().Set(ctx, r.cli.Key("cache", key), value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.cli.Redis().Del(ctx, r.cli.Key("cache", key)).Err()
}
