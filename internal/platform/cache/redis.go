package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection and keying settings.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	Prefix     string
	DefaultTTL time.Duration
}

// RedisCache is a Cache backed by Redis. Keys are stored under Prefix so
// Clear only touches this application's entries.
type RedisCache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.Prefix, cfg.DefaultTTL), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, prefix string, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return value, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Delete implements Cache.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Clear removes every key under the prefix using SCAN.
func (r *RedisCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
