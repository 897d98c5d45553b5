package noop

import (
	"context"
	"time"

	"github.com/superj80820/shorturler/domain"
)

type linkCache struct{}

// CreateLinkCache returns a cache that stores nothing and always misses,
// for deployments without a cache tier.
func CreateLinkCache() domain.LinkCache {
	return &linkCache{}
}

func (*linkCache) Put(ctx context.Context, shortCode string, payload *domain.LinkCachePayload, ttl time.Duration) error {
	return nil
}

func (*linkCache) Get(ctx context.Context, shortCode string) (*domain.LinkCachePayload, bool, error) {
	return nil, false, nil
}

func (*linkCache) Invalidate(ctx context.Context, shortCode string) error {
	return nil
}
