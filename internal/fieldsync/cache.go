package fieldsync

import (
	"context"

	"github.com/zjrosen/vizsync/internal/cachemanager"
	"github.com/zjrosen/vizsync/internal/log"
)

// TargetCache memoizes resolved target sets per field and direction. It is
// flushed on every registration change, before the component refreshes.
// A cache belongs to exactly one component.
type TargetCache struct {
	rt *cachemanager.ReadThroughCache[string, []Target, func() []Target]
}

// NewTargetCache builds a cache over cm.
func NewTargetCache(cm cachemanager.CacheManager[string, []Target]) *TargetCache {
	resolve := func(_ context.Context, fn func() []Target) ([]Target, error) {
		return fn(), nil
	}
	return &TargetCache{
		rt: cachemanager.NewReadThroughCache(cm, resolve, false),
	}
}

// NewInMemoryTargetCache builds a cache backed by go-cache with no expiry.
func NewInMemoryTargetCache() *TargetCache {
	return NewTargetCache(cachemanager.NewInMemoryCacheManager[string, []Target](
		"fieldsync-targets",
		cachemanager.NoExpiration,
		cachemanager.DefaultCleanupInterval,
	))
}

func (c *TargetCache) targets(key string, resolve func() []Target) []Target {
	// resolve never fails, so the error is always nil.
	targets, _ := c.rt.Get(context.Background(), key, resolve, cachemanager.NoExpiration)
	return targets
}

// Invalidate drops every cached target set.
func (c *TargetCache) Invalidate() {
	if err := c.rt.Invalidate(context.Background()); err != nil {
		log.ErrorErr(log.CatCache, "Failed to invalidate target cache", err)
	}
}
