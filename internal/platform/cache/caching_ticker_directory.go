// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/feature/cikmap/usecase"
)

// CachingTickerDirectory decorates a TickerDirectory with Redis caching.
// A nil Redis client falls back to an in-process snapshot per listing kind.
type CachingTickerDirectory struct {
	inner     usecase.TickerDirectory
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time

	mu    sync.Mutex
	local map[entity.ListingKind]snapshot
}

type snapshot struct {
	tickers []entity.Ticker
	expires time.Time
}

var (
	_ usecase.TickerDirectory  = (*CachingTickerDirectory)(nil)
	_ usecase.CacheInvalidator = (*CachingTickerDirectory)(nil)
)

// NewCachingTickerDirectory decorates a TickerDirectory with Redis caching.
// If ttl is 0, each stored listing expires at the next SEC refresh (06:00 America/New_York).
// If namespace is empty, it uses "sec_tickers".
func NewCachingTickerDirectory(rdb *redis.Client, ttl time.Duration, inner usecase.TickerDirectory, namespace string) *CachingTickerDirectory {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "sec_tickers"
	}
	return &CachingTickerDirectory{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
		local:     map[entity.ListingKind]snapshot{},
	}
}

// ttlAt returns the lifetime of a listing stored at now.
func (c *CachingTickerDirectory) ttlAt(now time.Time) time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return timeUntilNextRefresh(now)
}

// List retrieves a listing, checking the cache first then falling back to the inner directory.
func (c *CachingTickerDirectory) List(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	if c.rdb == nil {
		return c.listLocal(ctx, kind)
	}

	key := c.cacheKey(kind)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Ticker
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the inner directory
	out, err := c.inner.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttlAt(c.now())).Err()
	}

	return out, nil
}

// listLocal serves a listing from the in-process snapshot. The lock is held
// across the inner call so concurrent misses download a listing once.
func (c *CachingTickerDirectory) listLocal(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if s, ok := c.local[kind]; ok && now.Before(s.expires) {
		return slices.Clone(s.tickers), nil
	}

	out, err := c.inner.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	c.local[kind] = snapshot{tickers: slices.Clone(out), expires: now.Add(c.ttlAt(now))}
	return out, nil
}

// Invalidate deletes every cached listing in the namespace.
func (c *CachingTickerDirectory) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		c.mu.Lock()
		clear(c.local)
		c.mu.Unlock()
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// cacheKey generates the cache key of one listing.
func (c *CachingTickerDirectory) cacheKey(kind entity.ListingKind) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(string(kind)))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTickerDirectory) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
