package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/shorturler/domain"
	ormKit "github.com/superj80820/shorturler/kit/orm"
)

func createTestLinkRepo(t *testing.T) domain.LinkRepo {
	db, err := ormKit.CreateDB(ormKit.UseSQLite("file:" + t.Name() + "?mode=memory&cache=shared"))
	assert.Nil(t, err)
	assert.Nil(t, db.Exec(`
		CREATE TABLE link (
			id INTEGER PRIMARY KEY,
			short_code TEXT NOT NULL UNIQUE,
			original_url TEXT NOT NULL,
			owner_id INTEGER,
			created_at DATETIME NOT NULL,
			expires_at DATETIME,
			redirect_count INTEGER NOT NULL DEFAULT 0,
			last_accessed_at DATETIME
		)
	`).Error)
	return CreateLinkRepo(db)
}

func createTestLink(shortCode string) *domain.Link {
	return &domain.Link{
		ID:          time.Now().UnixNano(),
		ShortCode:   shortCode,
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}
}

func TestLinkRepoCreateAndGet(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	assert.Nil(t, linkRepo.Create(ctx, createTestLink("hseAAAAAA")))

	link, err := linkRepo.GetByShortCode(ctx, "hseAAAAAA")
	assert.Nil(t, err)
	assert.Equal(t, "https://example.com", link.OriginalURL)
	assert.Equal(t, int64(0), link.RedirectCount)

	_, err = linkRepo.GetByShortCode(ctx, "hseZZZZZZ")
	assert.True(t, errors.Is(err, domain.ErrLinkNotFound))
}

func TestLinkRepoDuplicateShortCode(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	assert.Nil(t, linkRepo.Create(ctx, createTestLink("hseAAAAAA")))

	duplicated := createTestLink("hseAAAAAA")
	duplicated.ID++
	err := linkRepo.Create(ctx, duplicated)
	assert.True(t, errors.Is(err, domain.ErrShortCodeExists))
}

func TestLinkRepoUpdate(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	assert.Nil(t, linkRepo.Create(ctx, createTestLink("hseAAAAAA")))

	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	err := linkRepo.Update(ctx, &domain.Link{
		ShortCode:   "hseAAAAAA",
		OriginalURL: "https://example.com/moved",
		ExpiresAt:   &expiresAt,
	})
	assert.Nil(t, err)

	link, err := linkRepo.GetByShortCode(ctx, "hseAAAAAA")
	assert.Nil(t, err)
	assert.Equal(t, "https://example.com/moved", link.OriginalURL)
	assert.NotNil(t, link.ExpiresAt)

	err = linkRepo.Update(ctx, &domain.Link{ShortCode: "hseZZZZZZ", OriginalURL: "https://example.com"})
	assert.True(t, errors.Is(err, domain.ErrLinkNotFound))
}

func TestLinkRepoDelete(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	assert.Nil(t, linkRepo.Create(ctx, createTestLink("hseAAAAAA")))
	assert.Nil(t, linkRepo.Delete(ctx, "hseAAAAAA"))

	_, err := linkRepo.GetByShortCode(ctx, "hseAAAAAA")
	assert.True(t, errors.Is(err, domain.ErrLinkNotFound))

	err = linkRepo.Delete(ctx, "hseAAAAAA")
	assert.True(t, errors.Is(err, domain.ErrLinkNotFound))
}

func TestLinkRepoIncrementRedirectCount(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	assert.Nil(t, linkRepo.Create(ctx, createTestLink("hseAAAAAA")))

	for i := 0; i < 5; i++ {
		assert.Nil(t, linkRepo.IncrementRedirectCount(ctx, "hseAAAAAA", time.Now()))
	}

	link, err := linkRepo.GetByShortCode(ctx, "hseAAAAAA")
	assert.Nil(t, err)
	assert.Equal(t, int64(5), link.RedirectCount)
	assert.NotNil(t, link.LastAccessedAt)

	err = linkRepo.IncrementRedirectCount(ctx, "hseZZZZZZ", time.Now())
	assert.True(t, errors.Is(err, domain.ErrLinkNotFound))
}

func TestLinkRepoSearchByOriginalURL(t *testing.T) {
	linkRepo := createTestLinkRepo(t)
	ctx := context.Background()

	first := createTestLink("hseAAAAAA")
	second := createTestLink("hseBBBBBB")
	second.ID++
	assert.Nil(t, linkRepo.Create(ctx, first))
	assert.Nil(t, linkRepo.Create(ctx, second))

	links, err := linkRepo.SearchByOriginalURL(ctx, "https://example.com")
	assert.Nil(t, err)
	assert.Len(t, links, 2)

	links, err = linkRepo.SearchByOriginalURL(ctx, "https://example.com/missing")
	assert.Nil(t, err)
	assert.Empty(t, links)
}
