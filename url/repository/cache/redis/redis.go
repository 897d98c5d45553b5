package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	redisKit "github.com/superj80820/shorturler/kit/redis"
)

type linkCache struct {
	cache *redisKit.Cache
}

func CreateLinkCache(cache *redisKit.Cache) domain.LinkCache {
	return &linkCache{cache: cache}
}

func (l *linkCache) Put(ctx context.Context, shortCode string, payload *domain.LinkCachePayload, ttl time.Duration) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal payload failed")
	}
	if err := l.cache.Set(ctx, shortCode, raw, ttl); err != nil {
		return errors.Wrap(err, "set cache failed")
	}
	return nil
}

func (l *linkCache) Get(ctx context.Context, shortCode string) (*domain.LinkCachePayload, bool, error) {
	val, exists, err := l.cache.Get(ctx, shortCode)
	if err != nil {
		return nil, false, errors.Wrap(err, "get cache failed")
	}
	if !exists {
		return nil, false, nil
	}
	var payload domain.LinkCachePayload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		return nil, false, errors.Wrap(err, "unmarshal payload failed")
	}
	return &payload, true, nil
}

func (l *linkCache) Invalidate(ctx context.Context, shortCode string) error {
	if err := l.cache.Del(ctx, shortCode); err != nil {
		return errors.Wrap(err, "del cache failed")
	}
	return nil
}
