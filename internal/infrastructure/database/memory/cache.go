// Package memory is the in-process score cache used when Redis is not
// configured. It stores JSON bytes so callers see the same copy semantics as
// the Redis cache.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/DealLens/internal/infrastructure/database/redis"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

const defaultCleanupInterval = time.Minute

// Cache is a redis.Cache held in process memory.
type Cache struct {
	store      *gocache.Cache
	prefix     string
	defaultTTL time.Duration
	logger     logging.Logger
	group      singleflight.Group
}

var _ redis.Cache = (*Cache)(nil)

// NewCache returns an empty cache. Set with a zero ttl uses defaultTTL.
func NewCache(prefix string, defaultTTL time.Duration, logger logging.Logger) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &Cache{
		store:      gocache.New(defaultTTL, defaultCleanupInterval),
		prefix:     prefix,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

func (c *Cache) fullKey(key string) string {
	return c.prefix + key
}

func (c *Cache) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := c.store.Get(c.fullKey(key))
	if !ok {
		return redis.ErrCacheMiss
	}
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return redis.ErrSerializationFailed.WithCause(err)
	}
	return nil
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return redis.ErrSerializationFailed.WithCause(err)
	}
	c.store.Set(c.fullKey(key), data, ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.store.Delete(c.fullKey(k))
	}
	return nil
}

// GetOrSet shares one load between concurrent misses on the same key.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if err != redis.ErrCacheMiss {
		return err
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		data, mErr := json.Marshal(loaded)
		if mErr != nil {
			return nil, redis.ErrSerializationFailed.WithCause(mErr)
		}
		if ttl == 0 {
			ttl = c.defaultTTL
		}
		c.store.Set(c.fullKey(key), data, ttl)
		return data, nil
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return redis.ErrSerializationFailed.WithCause(err)
	}
	return nil
}

func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) (int64, error) {
	var deleted int64
	full := c.fullKey(prefix)
	for k := range c.store.Items() {
		if strings.HasPrefix(k, full) {
			c.store.Delete(k)
			deleted++
		}
	}
	c.logger.Debug("Deleted cached entries", logging.String("prefix", full), logging.Int64("count", deleted))
	return deleted, nil
}

// Ping always succeeds.
func (c *Cache) Ping(context.Context) error { return nil }

// Len reports the number of live entries.
func (c *Cache) Len() int { return len(c.store.Items()) }

//Personal.AI order the ending
