package caching

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Minute

// memoryCache backs single instance deployments without redis.
type memoryCache struct {
	items *gocache.Cache
	// claim and release must not interleave
	locks sync.Mutex
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		items: gocache.New(gocache.NoExpiration, memoryCleanupInterval),
	}
}

func (c *memoryCache) Store(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.items.Set(key, value, ttl)
	return nil
}

func (c *memoryCache) Fetch(ctx context.Context, key string) ([]byte, error) {
	value, found := c.items.Get(key)
	if !found {
		return nil, nil
	}
	return value.([]byte), nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *memoryCache) Claim(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.locks.Lock()
	defer c.locks.Unlock()

	// Add fails while a live item holds the key
	return c.items.Add(key, value, ttl) == nil, nil
}

func (c *memoryCache) Release(ctx context.Context, key string, value []byte) (bool, error) {
	c.locks.Lock()
	defer c.locks.Unlock()

	current, found := c.items.Get(key)
	if !found || string(current.([]byte)) != string(value) {
		return false, nil
	}

	c.items.Delete(key)
	return true, nil
}
