// Package cache provides the byte-oriented response cache backends: Redis,
// in-process memory and a no-op implementation used when caching is off.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/bloggy-api/internal/config"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl. A zero ttl uses the backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
}

// Driver names accepted in configuration.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// KeyPrefix namespaces every Redis key written by the application.
const KeyPrefix = "bloggy:"

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "cache"), slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case DriverNone, "":
		log.Debug("response cache disabled")
		return Noop{}, nil
	case DriverMemory:
		log.Info("using in-memory response cache", slog.Duration("ttl", cfg.TTL()))
		return NewMemoryCache(cfg.TTL()), nil
	case DriverRedis:
		c, err := NewRedisCache(ctx, RedisConfig{
			Addr:       cfg.RedisAddr,
			Prefix:     KeyPrefix,
			DefaultTTL: cfg.TTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("using redis response cache", slog.Duration("ttl", cfg.TTL()))
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Noop is a Cache that stores nothing.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Clear(context.Context) error { return nil }
