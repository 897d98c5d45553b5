package memory

import (
	"context"
	"sync"
	"time"

	"github.com/superj80820/shorturler/domain"
)

type cacheEntry struct {
	payload  domain.LinkCachePayload
	expireAt time.Time
}

type linkCache struct {
	lock    sync.Mutex
	entries map[string]cacheEntry
}

// CreateLinkCache returns a process-local cache with per-entry TTL. Expired
// entries are dropped lazily on read.
func CreateLinkCache() domain.LinkCache {
	return &linkCache{entries: make(map[string]cacheEntry)}
}

func (l *linkCache) Put(ctx context.Context, shortCode string, payload *domain.LinkCachePayload, ttl time.Duration) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.entries[shortCode] = cacheEntry{
		payload:  *payload,
		expireAt: time.Now().Add(ttl),
	}
	return nil
}

func (l *linkCache) Get(ctx context.Context, shortCode string) (*domain.LinkCachePayload, bool, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	entry, ok := l.entries[shortCode]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expireAt) {
		delete(l.entries, shortCode)
		return nil, false, nil
	}
	payload := entry.payload
	return &payload, true, nil
}

func (l *linkCache) Invalidate(ctx context.Context, shortCode string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	delete(l.entries, shortCode)
	return nil
}
