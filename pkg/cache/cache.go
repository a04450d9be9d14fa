package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLList    = 30 * time.Second // admin listings refresh often
	TTLItem    = 5 * time.Minute
	TTLChat    = 1 * time.Minute
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes, one per moderatable resource
const (
	PrefixApplications = "applications:"
	PrefixPosts        = "posts:"
	PrefixProjects     = "projects:"
	PrefixUsers        = "users:"
	PrefixClaims       = "claims:"
	PrefixChat         = "chat:"
)

// Service is the Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// List caches keyed by resource prefix + query fingerprint
	GetList(ctx context.Context, prefix, fingerprint string, dest interface{}) error
	SetList(ctx context.Context, prefix, fingerprint string, data interface{}) error
	InvalidateResource(ctx context.Context, prefix string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the Redis-backed implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping verifies the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value with TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is present
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// GetList reads a cached listing page
func (c *redisCache) GetList(ctx context.Context, prefix, fingerprint string, dest interface{}) error {
	return c.Get(ctx, prefix+"list:"+fingerprint, dest)
}

// SetList stores a listing page
func (c *redisCache) SetList(ctx context.Context, prefix, fingerprint string, data interface{}) error {
	return c.Set(ctx, prefix+"list:"+fingerprint, data, TTLList)
}

// InvalidateResource drops every cached page for a resource prefix.
// SCAN instead of KEYS so a large keyspace does not block Redis.
func (c *redisCache) InvalidateResource(ctx context.Context, prefix string) error {
	if c.client == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
