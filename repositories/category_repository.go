package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// NameOrSlugTaken reports whether another category already uses name or
	// slug. excludeID skips the row being updated; pass 0 to check all rows.
	NameOrSlugTaken(ctx context.Context, name, slug string, excludeID int) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int) (bool, error)

	Assigned(ctx context.Context, blogID, categoryID int) (bool, error)
	Assign(ctx context.Context, link *models.BlogCategory) error
	Unassign(ctx context.Context, blogID, categoryID int) (bool, error)
	ForBlog(ctx context.Context, blogID int) ([]models.BlogCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(category).Error, "create category")
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, errors.Wrap(err, "list categories")
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get category %d", id)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, errors.Wrapf(err, "get category %q", slug)
	}
	return &category, nil
}

func (r *categoryRepository) NameOrSlugTaken(ctx context.Context, name, slug string, excludeID int) (bool, error) {
	query := r.db.WithContext(ctx).Where("(name = ? OR slug = ?)", name, slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var n int64
	if err := query.Model(&models.Category{}).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check category uniqueness")
	}
	return n > 0, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
		}).Error
	return errors.Wrapf(err, "update category %d", category.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete category %d", id)
	}
	return res.RowsAffected > 0, nil
}

func (r *categoryRepository) Assigned(ctx context.Context, blogID, categoryID int) (bool, error) {
	return exists(ctx, r.db, &models.BlogCategory{}, "blog_id = ? AND category_id = ?", blogID, categoryID)
}

func (r *categoryRepository) Assign(ctx context.Context, link *models.BlogCategory) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(link).Error; err != nil {
		return errors.Wrap(err, "assign category")
	}
	return errors.Wrap(r.db.WithContext(ctx).Preload("Category").First(link, link.ID).Error, "reload blog category")
}

func (r *categoryRepository) Unassign(ctx context.Context, blogID, categoryID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("blog_id = ? AND category_id = ?", blogID, categoryID).
		Delete(&models.BlogCategory{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "unassign category")
	}
	return res.RowsAffected > 0, nil
}

func (r *categoryRepository) ForBlog(ctx context.Context, blogID int) ([]models.BlogCategory, error) {
	links := []models.BlogCategory{}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("blog_id = ?", blogID).
		Order("created_at desc").
		Find(&links).Error
	return links, errors.Wrapf(err, "categories of blog %d", blogID)
}
