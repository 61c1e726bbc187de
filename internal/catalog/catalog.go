// Package catalog caches the measure catalog fetched from the practice API.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/statestore"
)

const cacheKey = "catalog:measures"

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// CachedCatalog serves ListMeasures from a statestore cache, refreshing it
// from the upstream catalog after ttl.
type CachedCatalog struct {
	upstream domain.MeasureCatalog
	cache    statestore.Store
	ttl      time.Duration
	logger   *slog.Logger
}

var _ domain.MeasureCatalog = (*CachedCatalog)(nil)

// New wraps upstream. A non-positive ttl disables caching.
func New(upstream domain.MeasureCatalog, cache statestore.Store, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{upstream: upstream, cache: cache, ttl: ttl, logger: logger}
}

// ListMeasures returns the cached catalog or fetches it. Cache failures are
// logged and fall through to the API.
func (c *CachedCatalog) ListMeasures(ctx context.Context) (domain.Catalog, error) {
	if c.ttl > 0 {
		var cached domain.Catalog
		err := c.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, statestore.ErrNotFound) {
			c.logger.WarnContext(ctx, "measure cache read failed", "error", err)
		}
	}

	fresh, err := c.upstream.ListMeasures(ctx)
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		if err := c.cache.Set(ctx, cacheKey, fresh, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "measure cache write failed", "error", err)
		}
	}
	return fresh, nil
}

// Invalidate drops the cached catalog.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, cacheKey)
}
