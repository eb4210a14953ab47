package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RevisionRepository interface {
	Create(ctx context.Context, revision *models.BlogRevision) error
	LatestVersion(ctx context.Context, blogID int) (int, error)
	GetList(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogRevision, int64, error)
	GetByVersion(ctx context.Context, blogID, version int) (*models.BlogRevision, error)
}

type revisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(ctx context.Context, revision *models.BlogRevision) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(revision).Error, "create revision")
}

// LatestVersion returns the highest version stored for the blog, or 0.
func (r *revisionRepository) LatestVersion(ctx context.Context, blogID int) (int, error) {
	var latest int
	err := r.db.WithContext(ctx).Model(&models.BlogRevision{}).
		Where("blog_id = ?", blogID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&latest).Error
	if err != nil {
		return 0, errors.Wrapf(err, "latest version of blog %d", blogID)
	}
	return latest, nil
}

func (r *revisionRepository) GetList(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogRevision, int64, error) {
	var revisions []models.BlogRevision
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BlogRevision{}).
		Where("blog_id = ?", blogID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count revisions")
	}

	err := query.Order("version desc").
		Scopes(paginate(page.Page, page.Limit)).
		Find(&revisions).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list revisions")
	}
	return revisions, total, nil
}

func (r *revisionRepository) GetByVersion(ctx context.Context, blogID, version int) (*models.BlogRevision, error) {
	var revision models.BlogRevision
	err := r.db.WithContext(ctx).
		Where("blog_id = ? AND version = ?", blogID, version).
		First(&revision).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get revision %d of blog %d", version, blogID)
	}
	return &revision, nil
}
