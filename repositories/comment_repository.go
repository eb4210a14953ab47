package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.CommentDetail, int64, error)
	UpdateContent(ctx context.Context, id int, content string) error
	Delete(ctx context.Context, id int) (bool, error)
}

type commentRow struct {
	models.Comment
	personRow
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Exists(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.db, &models.Comment{}, "id = ?", id)
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get comment %d", id)
	}
	return &comment, nil
}

func (r *commentRepository) ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.CommentDetail, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("blog_id = ?", blogID).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count comments")
	}

	userJoin, profileJoin := personJoins("comments.user_id")
	var rows []commentRow
	err = r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.user_id, comments.blog_id, comments.content, comments.created_at, " + personColumns).
		Joins(userJoin).
		Joins(profileJoin).
		Where("comments.blog_id = ?", blogID).
		Order("comments.created_at desc, comments.id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list comments")
	}

	comments := make([]models.CommentDetail, 0, len(rows))
	for _, row := range rows {
		d := models.CommentDetail{Comment: row.Comment}
		d.User, d.UserProfile = row.summaries()
		comments = append(comments, d)
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int, content string) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
	return errors.Wrapf(err, "update comment %d", id)
}

func (r *commentRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete comment %d", id)
	}
	return res.RowsAffected > 0, nil
}
