package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	shopCachePrefix = "shop:products:"
	shopCacheTTL    = 5 * time.Minute
)

// ShopCache caches rendered storefront listings in Redis. Every catalog
// write invalidates the whole listing namespace; entries also expire on
// their own so a missed invalidation heals itself.
type ShopCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewShopCache(client *redis.Client, log *logrus.Logger) *ShopCache {
	return &ShopCache{client: client, log: log}
}

// Get returns the cached payload for key, or nil on a miss.
func (c *ShopCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, shopCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *ShopCache) Set(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, shopCachePrefix+key, payload, shopCacheTTL).Err()
}

// Invalidate drops every cached listing. Failures are logged, not
// returned: the TTL bounds staleness either way.
func (c *ShopCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, shopCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan shop cache keys: %+v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate shop cache: %+v", err)
	}
}
