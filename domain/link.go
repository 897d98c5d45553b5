package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrLinkNotFound   = errors.New("link not found")
	ErrShortCodeExists = errors.New("short code already exists")
)

type Link struct {
	ID             int64
	ShortCode      string
	OriginalURL    string
	OwnerID        *int64
	CreatedAt      time.Time
	ExpiresAt      *time.Time
	RedirectCount  int64
	LastAccessedAt *time.Time
}

// Expired reports whether the link must no longer redirect. A nil ExpiresAt
// means the link never expires.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

// LinkUpdate carries the mutable fields of a link. A nil field is left
// untouched. ShortCode and OwnerID are immutable after creation.
type LinkUpdate struct {
	OriginalURL *string
	ExpiresAt   *time.Time
}

type LinkRepo interface {
	Create(ctx context.Context, link *Link) error
	GetByShortCode(ctx context.Context, shortCode string) (*Link, error)
	// Update persists OriginalURL and ExpiresAt only. Counters are never
	// written through this path.
	Update(ctx context.Context, link *Link) error
	Delete(ctx context.Context, shortCode string) error
	// IncrementRedirectCount must be atomic: concurrent calls for the same
	// short code may not lose updates.
	IncrementRedirectCount(ctx context.Context, shortCode string, accessedAt time.Time) error
	SearchByOriginalURL(ctx context.Context, originalURL string) ([]*Link, error)
}

// LinkCachePayload is the minimal value cached per short code. It carries no
// expiry metadata on purpose: the durable store stays authoritative for the
// expired decision.
type LinkCachePayload struct {
	OriginalURL string `json:"original_url"`
}

// LinkCache is a best-effort hint store. Implementations may fail or be
// entirely absent; callers degrade to durable-store-only behavior.
type LinkCache interface {
	Put(ctx context.Context, shortCode string, payload *LinkCachePayload, ttl time.Duration) error
	Get(ctx context.Context, shortCode string) (*LinkCachePayload, bool, error)
	Invalidate(ctx context.Context, shortCode string) error
}

type LinkUseCase interface {
	Create(ctx context.Context, originalURL string, expiresAt *time.Time, customAlias string, ownerID *int64) (*Link, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	Update(ctx context.Context, shortCode string, update *LinkUpdate, requesterID int64) (*Link, error)
	Delete(ctx context.Context, shortCode string, requesterID int64) (*Link, error)
	Search(ctx context.Context, originalURL string) ([]*Link, error)
	Stats(ctx context.Context, shortCode string) (*Link, error)
}
