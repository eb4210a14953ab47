package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// Cache stores JSON encoded values. Both backends share the encoding, so
// callers get a copy and never alias cached data.
type Cache interface {
	// Get decodes the value stored at key into dest and reports whether it
	// was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

func KeyBlogStats() string {
	return "blogs:stats"
}

func KeyCategory(id int) string {
	return "category:" + strconv.Itoa(id)
}

func KeyCategorySlug(slug string) string {
	return "category_slug:" + slug
}

func KeyCategories() string {
	return "categories"
}

type memoryCache struct {
	inner *gocache.Cache
}

func NewMemory(defaultTTL, cleanup time.Duration) Cache {
	return &memoryCache{inner: gocache.New(defaultTTL, cleanup)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.inner.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := raw.([]byte)
	if !ok {
		return false, errors.Errorf("cache entry %q has unexpected type %T", key, raw)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrapf(err, "decode cache entry %q", key)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode cache entry %q", key)
	}
	c.inner.Set(key, data, ttl)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.inner.Delete(key)
	}
	return nil
}

type redisCache struct {
	inner *redis.Client
}

func NewRedis(addr, password string) Cache {
	return &redisCache{inner: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})}
}

// NewRedisClient wraps an existing client.
func NewRedisClient(client *redis.Client) Cache {
	return &redisCache{inner: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.inner.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "redis get %q", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrapf(err, "decode cache entry %q", key)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode cache entry %q", key)
	}
	return errors.Wrapf(c.inner.Set(ctx, key, data, ttl).Err(), "redis set %q", key)
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.inner.Del(ctx, keys...).Err(), "redis del")
}

// New picks the backend named by driver; anything but redis is in memory.
func New(driver string, defaultTTL time.Duration, redisAddr, redisPassword string) Cache {
	if driver == DriverRedis {
		return NewRedis(redisAddr, redisPassword)
	}
	return NewMemory(defaultTTL, 2*defaultTTL)
}
