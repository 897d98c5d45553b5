package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
)

type linkRepo struct {
	lock  sync.Mutex
	links map[string]*domain.Link
}

// CreateLinkRepo returns an in-memory store keyed by short code. It honors
// the same uniqueness and atomicity guarantees as the durable store, which
// makes it a drop-in for tests.
func CreateLinkRepo() domain.LinkRepo {
	return &linkRepo{links: make(map[string]*domain.Link)}
}

func (l *linkRepo) Create(ctx context.Context, link *domain.Link) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.links[link.ShortCode]; ok {
		return errors.Wrap(domain.ErrShortCodeExists, "insert link failed")
	}
	cloned := *link
	l.links[link.ShortCode] = &cloned
	return nil
}

func (l *linkRepo) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	link, ok := l.links[shortCode]
	if !ok {
		return nil, errors.Wrap(domain.ErrLinkNotFound, "query link failed")
	}
	cloned := *link
	return &cloned, nil
}

func (l *linkRepo) Update(ctx context.Context, link *domain.Link) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	stored, ok := l.links[link.ShortCode]
	if !ok {
		return errors.Wrap(domain.ErrLinkNotFound, "update link failed")
	}
	stored.OriginalURL = link.OriginalURL
	stored.ExpiresAt = link.ExpiresAt
	return nil
}

func (l *linkRepo) Delete(ctx context.Context, shortCode string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.links[shortCode]; !ok {
		return errors.Wrap(domain.ErrLinkNotFound, "delete link failed")
	}
	delete(l.links, shortCode)
	return nil
}

func (l *linkRepo) IncrementRedirectCount(ctx context.Context, shortCode string, accessedAt time.Time) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	link, ok := l.links[shortCode]
	if !ok {
		return errors.Wrap(domain.ErrLinkNotFound, "increment redirect count failed")
	}
	link.RedirectCount++
	link.LastAccessedAt = &accessedAt
	return nil
}

func (l *linkRepo) SearchByOriginalURL(ctx context.Context, originalURL string) ([]*domain.Link, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	var links []*domain.Link
	for _, link := range l.links {
		if link.OriginalURL == originalURL {
			cloned := *link
			links = append(links, &cloned)
		}
	}
	return links, nil
}
