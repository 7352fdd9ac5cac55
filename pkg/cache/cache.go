package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface.
// Values are stored as JSON; Get unmarshals into dest.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// GetOrLoad returns the cached value of key, or calls load and caches its result.
// A failing cache never fails the call: load runs and its result is returned.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		return cached, true, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, false, err
	}
	_ = c.Set(ctx, key, v, ttl)
	return v, false, nil
}
