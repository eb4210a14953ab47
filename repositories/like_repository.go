package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LikeRepository interface {
	Exists(ctx context.Context, userID string, blogID int) (bool, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID string, blogID int) (bool, error)
	ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.LikeDetail, int64, error)
}

type likeRow struct {
	models.Like
	personRow
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID string, blogID int) (bool, error) {
	return exists(ctx, r.db, &models.Like{}, "user_id = ? AND blog_id = ?", userID, blogID)
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(like).Error, "create like")
}

func (r *likeRepository) Delete(ctx context.Context, userID string, blogID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete like")
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.LikeDetail, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count likes")
	}

	userJoin, profileJoin := personJoins("likes.user_id")
	var rows []likeRow
	err = r.db.WithContext(ctx).
		Table("likes").
		Select("likes.id, likes.user_id, likes.blog_id, likes.created_at, " + personColumns).
		Joins(userJoin).
		Joins(profileJoin).
		Where("likes.blog_id = ?", blogID).
		Order("likes.created_at desc, likes.id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list likes")
	}

	likes := make([]models.LikeDetail, 0, len(rows))
	for _, row := range rows {
		d := models.LikeDetail{Like: row.Like}
		d.User, d.UserProfile = row.summaries()
		likes = append(likes, d)
	}
	return likes, total, nil
}
