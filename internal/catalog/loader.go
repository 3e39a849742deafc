// Package catalog serves read-side product aggregates with a cache-aside
// Redis layer in front of the backend API. Cache trouble never fails a read;
// the loader falls back to the backend and logs.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
	"github.com/sayeedajmal/saudimart-core/pkg/redis"
)

// ProductFetcher is the backend read surface the loader wraps.
type ProductFetcher interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

// Cache is the slice of the redis client the loader uses.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ProductKey(productID string) string
}

// Loader reads product aggregates, cache first.
type Loader struct {
	backend ProductFetcher
	cache   Cache
	ttl     time.Duration
	log     *logger.Logger
}

// NewLoader builds the loader. A nil cache disables caching entirely.
func NewLoader(backend ProductFetcher, cache Cache, cfg config.CacheConfig, log *logger.Logger) *Loader {
	return &Loader{
		backend: backend,
		cache:   cache,
		ttl:     cfg.ProductTTL,
		log:     log,
	}
}

// GetProduct returns the product aggregate, consulting the cache before the
// backend and filling the cache on a miss.
func (l *Loader) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	if l.cache != nil {
		if product, ok := l.fromCache(ctx, productID); ok {
			return product, nil
		}
	}

	product, err := l.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.fill(ctx, productID, product)
	}
	return product, nil
}

// Invalidate drops the cached aggregate after the product's graph changed.
func (l *Loader) Invalidate(ctx context.Context, productID string) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.Del(ctx, l.cache.ProductKey(productID))
}

func (l *Loader) fromCache(ctx context.Context, productID string) (*catalog.Product, bool) {
	raw, err := l.cache.Get(ctx, l.cache.ProductKey(productID))
	if err != nil {
		if !redis.IsMiss(err) {
			l.log.Warn(ctx, fmt.Sprintf("product cache read failed for %s: %v", productID, err))
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		l.log.Warn(ctx, fmt.Sprintf("corrupt product cache entry for %s: %v", productID, err))
		return nil, false
	}
	return &product, true
}

func (l *Loader) fill(ctx context.Context, productID string, product *catalog.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		l.log.Warn(ctx, fmt.Sprintf("product cache encode failed for %s: %v", productID, err))
		return
	}
	if err := l.cache.Set(ctx, l.cache.ProductKey(productID), string(raw), l.ttl); err != nil {
		l.log.Warn(ctx, fmt.Sprintf("product cache write failed for %s: %v", productID, err))
	}
}
