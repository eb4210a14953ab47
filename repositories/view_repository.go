package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ViewRepository interface {
	Create(ctx context.Context, view *models.BlogView) error
	ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogView, int64, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) Create(ctx context.Context, view *models.BlogView) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(view).Error, "create view")
}

// ListForBlog returns views oldest first.
func (r *viewRepository) ListForBlog(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogView, int64, error) {
	views := []models.BlogView{}
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BlogView{}).
		Where("blog_id = ?", blogID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count views")
	}

	err := query.Order("created_at asc, id asc").
		Scopes(paginate(page.Page, page.Limit)).
		Find(&views).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list views")
	}
	return views, total, nil
}
