// Package cache provides a small JSON cache over Redis for upstream API
// responses, with a no-op fallback so every caller can hold a Cache without
// caring whether Redis is configured.
package cache

import (
	"context"
	"time"

	"github.com/unicpatent/unic-ip/pkg/errors"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New(errors.CodeNotFound, "cache miss")

// Loader produces the value for a key on a cache miss.
type Loader func(ctx context.Context) (interface{}, error)

// Cache is the caching contract used by the lookup services.  Values are
// JSON-serialized; dest must be a pointer.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// GetOrSet returns the cached value when present, otherwise runs the
	// loader once (concurrent callers for the same key share one load),
	// stores the result, and fills dest with it.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader Loader) error

	Ping(ctx context.Context) error
	Close() error
}

type nopCache struct{}

var _ Cache = (*nopCache)(nil)

// NewNopCache returns a cache that stores nothing.  Get always misses and
// GetOrSet always runs the loader.
func NewNopCache() Cache { return &nopCache{} }

func (n *nopCache) Get(context.Context, string, interface{}) error { return ErrMiss }

func (n *nopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (n *nopCache) Delete(context.Context, ...string) error { return nil }

func (n *nopCache) GetOrSet(ctx context.Context, _ string, dest interface{}, _ time.Duration, loader Loader) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	return copyValue(value, dest)
}

func (n *nopCache) Ping(context.Context) error { return nil }

func (n *nopCache) Close() error { return nil }
