package main

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jd-develop/geodesie-de-bureau/internal/config"
	"github.com/jd-develop/geodesie-de-bureau/internal/lookup"
	"github.com/jd-develop/geodesie-de-bureau/internal/resilience"
	"github.com/jd-develop/geodesie-de-bureau/internal/store"
	"github.com/jd-develop/geodesie-de-bureau/pkg/ign"
)

// lookupEnv holds the lookup service and the resources behind it, shared by
// the root, batch and serve commands.
type lookupEnv struct {
	Service *lookup.Service
	Cache   *store.Cache // nil when caching is disabled
}

// Close releases resources held by the lookup environment.
func (le *lookupEnv) Close() {
	if le.Cache != nil {
		if err := le.Cache.Close(); err != nil {
			zap.L().Warn("close cache", zap.Error(err))
		}
	}
}

// initLookup creates the upstream client, the optional response cache and
// the lookup service from cfg.
func initLookup(ctx context.Context) (*lookupEnv, error) {
	var upstream ign.Client = newUpstream(cfg.IGN)
	env := &lookupEnv{}

	if cfg.Cache.Enabled {
		c, err := openCache(ctx)
		if err != nil {
			return nil, err
		}
		env.Cache = c
		upstream = lookup.NewCachedUpstream(upstream, c, cfg.Cache.TTL())
	}

	env.Service = lookup.NewService(upstream, lookup.WithDiagnostics(cfg.Display.Diagnostics))
	return env, nil
}

func newUpstream(c config.IGNConfig) ign.Client {
	return ign.NewClient(
		ign.WithSearchURL(c.SearchURL),
		ign.WithBBoxBaseURL(c.BBoxBaseURL),
		ign.WithHTTPClient(&http.Client{Timeout: c.Timeout()}),
		ign.WithRateLimiter(rate.NewLimiter(rate.Limit(c.RatePerSec), 1)),
		ign.WithRetry(resilience.NewPolicy(c.MaxAttempts, "ign")),
	)
}

// openCache opens and migrates the response cache database.
func openCache(ctx context.Context) (*store.Cache, error) {
	path, err := cfg.CachePath()
	if err != nil {
		return nil, err
	}
	c, err := store.OpenCache(path)
	if err != nil {
		return nil, err
	}
	if err := c.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, eris.Wrap(err, "migrate cache")
	}
	zap.L().Debug("cache opened", zap.String("path", path))
	return c, nil
}
