package usecase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	"github.com/superj80820/shorturler/kit/code"
	loggerKit "github.com/superj80820/shorturler/kit/logger"
	utilKit "github.com/superj80820/shorturler/kit/util"
)

// createRetryLimit bounds regeneration on a short-code collision, so a
// saturated namespace cannot loop forever.
const createRetryLimit = 3

type linkUseCase struct {
	linkRepo domain.LinkRepo
	cache    domain.LinkCache
	cacheTTL time.Duration
	logger   *loggerKit.Logger
}

func CreateLinkUseCase(linkRepo domain.LinkRepo, cache domain.LinkCache, cacheTTL time.Duration, logger *loggerKit.Logger) (domain.LinkUseCase, error) {
	if linkRepo == nil || cache == nil || logger == nil {
		return nil, errors.New("create use case failed")
	}
	return &linkUseCase{
		linkRepo: linkRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}, nil
}

func (l *linkUseCase) Create(ctx context.Context, originalURL string, expiresAt *time.Time, customAlias string, ownerID *int64) (*domain.Link, error) {
	if !isValidURL(originalURL) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
	}

	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}

	for attempt := 0; attempt < createRetryLimit; attempt++ {
		link := &domain.Link{
			ID:          uniqueIDGenerate.Generate().GetInt64(),
			ShortCode:   utilKit.GenerateShortCode(customAlias),
			OriginalURL: originalURL,
			OwnerID:     ownerID,
			CreatedAt:   time.Now(),
			ExpiresAt:   expiresAt,
		}

		err := l.linkRepo.Create(ctx, link)
		if errors.Is(err, domain.ErrShortCodeExists) {
			if customAlias != "" {
				// The caller owns the alias, nothing to regenerate.
				return nil, code.CreateErrorCode(http.StatusConflict).AddCode(code.DuplicateCode)
			}
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "save link failed")
		}

		l.fillCache(ctx, link.ShortCode, link.OriginalURL)
		return link, nil
	}

	return nil, code.CreateErrorCode(http.StatusConflict).AddCode(code.DuplicateCode)
}

// Resolve is the hot path. The cache only spares re-reading the URL value:
// existence, expiry and the redirect counter always go through the durable
// store, so a stale cache entry can never make an expired link redirect.
func (l *linkUseCase) Resolve(ctx context.Context, shortCode string) (string, error) {
	payload, cacheHit, err := l.cache.Get(ctx, shortCode)
	if err != nil {
		l.logCacheDegraded(ctx, "get", shortCode, err)
		cacheHit = false
	}

	link, err := l.linkRepo.GetByShortCode(ctx, shortCode)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return "", code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return "", errors.Wrap(err, "load link failed")
	}

	if link.Expired(time.Now()) {
		// No counter update, no cache touch for a dead link.
		return "", code.CreateErrorCode(http.StatusGone)
	}

	if err := l.linkRepo.IncrementRedirectCount(ctx, shortCode, time.Now()); err != nil {
		return "", errors.Wrap(err, "increment redirect count failed")
	}

	if cacheHit {
		return payload.OriginalURL, nil
	}

	// Self-heal a cold or evicted cache.
	l.fillCache(ctx, shortCode, link.OriginalURL)
	return link.OriginalURL, nil
}

func (l *linkUseCase) Update(ctx context.Context, shortCode string, update *domain.LinkUpdate, requesterID int64) (*domain.Link, error) {
	link, err := l.getOwnedLink(ctx, shortCode, requesterID)
	if err != nil {
		return nil, err
	}

	if update.OriginalURL != nil {
		if !isValidURL(*update.OriginalURL) {
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
		}
		link.OriginalURL = *update.OriginalURL
	}
	if update.ExpiresAt != nil {
		link.ExpiresAt = update.ExpiresAt
	}

	if err := l.linkRepo.Update(ctx, link); err != nil {
		return nil, errors.Wrap(err, "update link failed")
	}

	// Invalidate before refill, so a concurrent reader never observes a
	// state older than "no entry".
	l.invalidateCache(ctx, shortCode)
	l.fillCache(ctx, shortCode, link.OriginalURL)

	return link, nil
}

func (l *linkUseCase) Delete(ctx context.Context, shortCode string, requesterID int64) (*domain.Link, error) {
	link, err := l.getOwnedLink(ctx, shortCode, requesterID)
	if err != nil {
		return nil, err
	}

	if err := l.linkRepo.Delete(ctx, shortCode); err != nil {
		return nil, errors.Wrap(err, "delete link failed")
	}

	l.invalidateCache(ctx, shortCode)

	return link, nil
}

func (l *linkUseCase) Search(ctx context.Context, originalURL string) ([]*domain.Link, error) {
	links, err := l.linkRepo.SearchByOriginalURL(ctx, originalURL)
	if err != nil {
		return nil, errors.Wrap(err, "search links failed")
	}
	return links, nil
}

// Stats must be exact, so it never consults the cache.
func (l *linkUseCase) Stats(ctx context.Context, shortCode string) (*domain.Link, error) {
	link, err := l.linkRepo.GetByShortCode(ctx, shortCode)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "load link failed")
	}
	return link, nil
}

// getOwnedLink loads a link and gates mutation on ownership. A link without
// an owner can never pass the gate: no requester ID equals nil. Preserved
// behavior, anonymous links stay immutable.
func (l *linkUseCase) getOwnedLink(ctx context.Context, shortCode string, requesterID int64) (*domain.Link, error) {
	link, err := l.linkRepo.GetByShortCode(ctx, shortCode)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "load link failed")
	}
	if link.OwnerID == nil || *link.OwnerID != requesterID {
		return nil, code.CreateErrorCode(http.StatusForbidden)
	}
	return link, nil
}

// fillCache and invalidateCache are best-effort: the cache is a hint, a
// broken cache transport degrades the request to store-only behavior and
// must never fail it.
func (l *linkUseCase) fillCache(ctx context.Context, shortCode, originalURL string) {
	if err := l.cache.Put(ctx, shortCode, &domain.LinkCachePayload{OriginalURL: originalURL}, l.cacheTTL); err != nil {
		l.logCacheDegraded(ctx, "put", shortCode, err)
	}
}

func (l *linkUseCase) invalidateCache(ctx context.Context, shortCode string) {
	if err := l.cache.Invalidate(ctx, shortCode); err != nil {
		l.logCacheDegraded(ctx, "invalidate", shortCode, err)
	}
}

func (l *linkUseCase) logCacheDegraded(ctx context.Context, op, shortCode string, err error) {
	l.logger.With(
		loggerKit.String("op", op),
		loggerKit.String("short-code", shortCode),
		loggerKit.Error(err),
	).Warn("link cache degraded, falling back to durable store")
}

func isValidURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
