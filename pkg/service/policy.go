package service

import (
	"context"
	"time"

	"github.com/you/storefront/pkg/cache"
)

// sideCache applies the cache-aside write policy shared by the user and
// product services: every cache write runs under the populate timeout and
// its outcome is swallowed, so cache latency or failure never reaches the
// caller. A nil manager disables caching entirely.
type sideCache struct {
	manager *cache.Manager
}

// populate stores a read result after the authoritative store answered.
func (c sideCache) populate(ctx context.Context, key string, rec any, ttl time.Duration) {
	if c.manager == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.manager.PopulateTimeout())
	defer cancel()
	c.manager.SetRecord(ctx, key, rec, ttl)
}

// refresh overwrites an entry in place after a successful store write.
func (c sideCache) refresh(ctx context.Context, key string, rec any, ttl time.Duration) {
	c.populate(ctx, key, rec, ttl)
}

// invalidate drops an entry after a successful store write.
func (c sideCache) invalidate(ctx context.Context, key string) {
	if c.manager == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.manager.PopulateTimeout())
	defer cancel()
	c.manager.Delete(ctx, key)
}
