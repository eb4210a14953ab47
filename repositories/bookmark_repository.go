package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BookmarkRepository interface {
	Exists(ctx context.Context, userID string, blogID int) (bool, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, userID string, blogID int) (bool, error)
	ListForUser(ctx context.Context, userID string, page models.PageParams) ([]models.BlogEntryDetail, int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID string, blogID int) (bool, error) {
	return exists(ctx, r.db, &models.Bookmark{}, "user_id = ? AND blog_id = ?", userID, blogID)
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(bookmark).Error, "create bookmark")
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID string, blogID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete bookmark")
	}
	return res.RowsAffected > 0, nil
}

func (r *bookmarkRepository) ListForUser(ctx context.Context, userID string, page models.PageParams) ([]models.BlogEntryDetail, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count bookmarks")
	}

	userJoin, profileJoin := personJoins("b.author_id")
	var rows []blogEntryRow
	err = r.db.WithContext(ctx).
		Table("bookmarks e").
		Select(blogEntryColumns).
		Joins("JOIN blog b ON b.id = e.blog_id").
		Joins(userJoin).
		Joins(profileJoin).
		Where("e.user_id = ?", userID).
		Order("e.created_at desc, e.id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list bookmarks")
	}
	return blogEntryDetails(rows), total, nil
}
