package cache

import (
	"context"
	"time"
)

// LayeredCache reads an in-process L1 before the shared L2. Writes go
// through to L2 first so replicas observe the same value.
type LayeredCache struct {
	l1    BytesCache
	l2    BytesCache
	l1TTL time.Duration
}

// NewLayeredCache caps L1 entries at l1TTL; zero keeps L2's ttl.
func NewLayeredCache(l1, l2 BytesCache, l1TTL time.Duration) *LayeredCache {
	return &LayeredCache{l1: l1, l2: l2, l1TTL: l1TTL}
}

var _ BytesCache = (*LayeredCache)(nil)

func (c *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := c.l1.GetBytes(ctx, key); err == nil && ok {
		return b, true, nil
	}
	b, ok, err := c.l2.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.l1.SetBytes(ctx, key, b, c.localTTL(0))
	return b, true, nil
}

func (c *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.l2.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.l1.SetBytes(ctx, key, value, c.localTTL(ttl))
}

func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	_ = c.l1.Delete(ctx, key)
	return c.l2.Delete(ctx, key)
}

func (c *LayeredCache) localTTL(ttl time.Duration) time.Duration {
	if c.l1TTL > 0 && (ttl <= 0 || c.l1TTL < ttl) {
		return c.l1TTL
	}
	return ttl
}
