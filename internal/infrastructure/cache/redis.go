package cache

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

type redisCache struct {
	rdb        redis.UniversalClient
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

var _ Cache = (*redisCache)(nil)

// New builds the configured cache: a Redis-backed one when cfg.Enabled, the
// no-op cache otherwise.  The Redis connection is verified with a ping.
func New(cfg config.RedisConfig, logger logging.Logger) (Cache, error) {
	if !cfg.Enabled {
		logger.Info("cache disabled, lookups go straight to upstream")
		return NewNopCache(), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, errors.CodeCacheError, "redis connection failed").
			WithDetail(cfg.Addr)
	}

	logger.Info("redis cache connected", logging.String("addr", cfg.Addr))
	return newWithClient(rdb, cfg, logger), nil
}

// newWithClient wires a cache around an existing client; tests inject a mock
// through this path.
func newWithClient(rdb redis.UniversalClient, cfg config.RedisConfig, logger logging.Logger) Cache {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "unicip"
	}
	ttl := cfg.DefaultTTL
	if ttl == 0 {
		ttl = 6 * time.Hour
	}
	return &redisCache{
		rdb:        rdb,
		logger:     logger.Named("cache"),
		prefix:     prefix + ":",
		defaultTTL: ttl,
	}
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by +/-10% so bulk lookups cached together
// do not all expire in the same instant.
func (c *redisCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache get failed")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache value decode failed").
			WithDetail(key)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache value encode failed").
			WithDetail(key)
	}
	return c.rdb.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = c.fullKey(k)
	}
	return c.rdb.Del(ctx, fullKeys...).Err()
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader Loader) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if err != ErrMiss {
		// A broken cache degrades to a direct load instead of failing
		// the lookup.
		c.logger.Warn("cache read failed, loading directly",
			logging.String("key", key), logging.Err(err))
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache write failed",
				logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return err
	}
	return copyValue(value, dest)
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}

// copyValue moves a loader result into the caller's destination through a
// JSON round trip, matching what a cache hit would have produced.
func copyValue(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "loader value encode failed")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "loader value decode failed")
	}
	return nil
}
