package http

import (
	"time"

	"github.com/superj80820/shorturler/domain"
)

type linkResponse struct {
	ShortCode      string     `json:"short_code"`
	OriginalURL    string     `json:"original_url"`
	OwnerID        *int64     `json:"owner_id"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	RedirectCount  int64      `json:"redirect_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
}

func makeLinkResponse(link *domain.Link) *linkResponse {
	return &linkResponse{
		ShortCode:      link.ShortCode,
		OriginalURL:    link.OriginalURL,
		OwnerID:        link.OwnerID,
		CreatedAt:      link.CreatedAt,
		ExpiresAt:      link.ExpiresAt,
		RedirectCount:  link.RedirectCount,
		LastAccessedAt: link.LastAccessedAt,
	}
}
