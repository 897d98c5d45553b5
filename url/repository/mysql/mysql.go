package mysql

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	ormKit "github.com/superj80820/shorturler/kit/orm"
)

type linkEntity struct {
	*domain.Link
}

func (linkEntity) TableName() string {
	return "link"
}

type linkRepo struct {
	orm *ormKit.DB
}

func CreateLinkRepo(orm *ormKit.DB) domain.LinkRepo {
	return &linkRepo{orm: orm}
}

func (l *linkRepo) Create(ctx context.Context, link *domain.Link) error {
	err := l.orm.WithContext(ctx).Create(&linkEntity{Link: link}).Error
	if mysqlErr, ok := ormKit.ConvertMySQLErr(err); ok {
		err = mysqlErr
	}
	if errors.Is(err, ormKit.ErrDuplicatedKey) {
		return errors.Wrap(domain.ErrShortCodeExists, "insert link failed")
	} else if err != nil {
		return errors.Wrap(err, "insert link failed")
	}
	return nil
}

func (l *linkRepo) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link linkEntity
	err := l.orm.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrLinkNotFound, "query link failed")
	} else if err != nil {
		return nil, errors.Wrap(err, "query link failed")
	}
	return link.Link, nil
}

func (l *linkRepo) Update(ctx context.Context, link *domain.Link) error {
	result := l.orm.WithContext(ctx).
		Model(&linkEntity{}).
		Where("short_code = ?", link.ShortCode).
		Updates(map[string]interface{}{
			"original_url": link.OriginalURL,
			"expires_at":   link.ExpiresAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update link failed")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrLinkNotFound, "update link failed")
	}
	return nil
}

func (l *linkRepo) Delete(ctx context.Context, shortCode string) error {
	result := l.orm.WithContext(ctx).Where("short_code = ?", shortCode).Delete(&linkEntity{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete link failed")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrLinkNotFound, "delete link failed")
	}
	return nil
}

func (l *linkRepo) IncrementRedirectCount(ctx context.Context, shortCode string, accessedAt time.Time) error {
	// Single UPDATE with a relative expression, so concurrent redirects
	// never lose counts.
	result := l.orm.WithContext(ctx).
		Model(&linkEntity{}).
		Where("short_code = ?", shortCode).
		Updates(map[string]interface{}{
			"redirect_count":   ormKit.Expr("redirect_count + 1"),
			"last_accessed_at": accessedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "increment redirect count failed")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrLinkNotFound, "increment redirect count failed")
	}
	return nil
}

func (l *linkRepo) SearchByOriginalURL(ctx context.Context, originalURL string) ([]*domain.Link, error) {
	var entities []*linkEntity
	if err := l.orm.WithContext(ctx).Where("original_url = ?", originalURL).Find(&entities).Error; err != nil {
		return nil, errors.Wrap(err, "query links failed")
	}
	links := make([]*domain.Link, len(entities))
	for idx, entity := range entities {
		links[idx] = entity.Link
	}
	return links, nil
}
