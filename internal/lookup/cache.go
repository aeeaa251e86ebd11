package lookup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jd-develop/geodesie-de-bureau/pkg/ign"
)

// Cache stores upstream response bodies by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// CachedUpstream serves repeated upstream requests from a Cache. Cache
// failures are logged and the request goes upstream; upstream errors are
// never cached.
type CachedUpstream struct {
	next  ign.Client
	cache Cache
	ttl   time.Duration
}

var _ ign.Client = (*CachedUpstream)(nil)

// NewCachedUpstream wraps next with cache, keeping entries for ttl.
func NewCachedUpstream(next ign.Client, cache Cache, ttl time.Duration) *CachedUpstream {
	return &CachedUpstream{next: next, cache: cache, ttl: ttl}
}

func (c *CachedUpstream) Search(ctx context.Context, query string) (string, error) {
	body, err := c.fetch(ctx, "search|"+query, func(ctx context.Context) ([]byte, error) {
		s, err := c.next.Search(ctx, query)
		return []byte(s), err
	})
	return string(body), err
}

func (c *CachedUpstream) Locate(ctx context.Context, key string) (string, error) {
	body, err := c.fetch(ctx, "locate|"+key, func(ctx context.Context) ([]byte, error) {
		s, err := c.next.Locate(ctx, key)
		return []byte(s), err
	})
	return string(body), err
}

func (c *CachedUpstream) BBox(ctx context.Context, lon, lat string) ([]byte, error) {
	return c.fetch(ctx, "bbox|"+lon+"/"+lat, func(ctx context.Context) ([]byte, error) {
		return c.next.BBox(ctx, lon, lat)
	})
}

func (c *CachedUpstream) fetch(ctx context.Context, key string, miss func(context.Context) ([]byte, error)) ([]byte, error) {
	body, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		zap.L().Warn("lookup: cache read failed", zap.String("key", key), zap.Error(err))
	case ok:
		zap.L().Debug("lookup: cache hit", zap.String("key", key))
		return body, nil
	}

	body, err = miss(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		zap.L().Warn("lookup: cache write failed", zap.String("key", key), zap.Error(err))
	}
	return body, nil
}
