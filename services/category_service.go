package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"portfolio-api/cache"
	"portfolio-api/models"
	"portfolio-api/repositories"
	Logger "portfolio-api/utils/log"
)

type CategoryService interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	// GetCategory looks a category up by numeric id, or by slug otherwise.
	GetCategory(ctx context.Context, param string) (*models.Category, error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, req models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	GetBlogCategories(ctx context.Context, blogID int) ([]models.BlogCategory, error)
	AssignCategory(ctx context.Context, blogID, categoryID int) (*models.BlogCategory, error)
	UnassignCategory(ctx context.Context, blogID, categoryID int) error
}

type categoryService struct {
	store *repositories.Store
	cache cache.Cache
	ttl   time.Duration
}

func NewCategoryService(store *repositories.Store, c cache.Cache, ttl time.Duration) CategoryService {
	return &categoryService{store: store, cache: c, ttl: ttl}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.fromCache(ctx, cache.KeyCategories(), &categories) {
		return categories, nil
	}
	categories, err := s.store.Categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cache.KeyCategories(), categories)
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, param string) (*models.Category, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil, models.NewValidationError("Invalid category identifier")
	}

	key := cache.KeyCategorySlug(param)
	id, err := strconv.Atoi(param)
	isID := err == nil && id > 0
	if isID {
		key = cache.KeyCategory(id)
	}

	var category models.Category
	if s.fromCache(ctx, key, &category) {
		return &category, nil
	}

	var found *models.Category
	if isID {
		found, err = s.store.Categories.GetByID(ctx, id)
	} else {
		found, err = s.store.Categories.GetBySlug(ctx, param)
	}
	if repositories.IsNotFound(err) {
		return nil, models.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, found)
	return found, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
	}
	if category.Name == "" || category.Slug == "" {
		return nil, models.NewValidationError("Name and slug are required")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		taken, err := tx.Categories.NameOrSlugTaken(ctx, category.Name, category.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return models.ErrCategoryExists
		}
		return tx.Categories.Create(ctx, category)
	})
	if repositories.IsDuplicate(err) {
		return nil, models.ErrCategoryExists
	}
	if err != nil {
		return nil, err
	}

	s.evict(ctx, cache.KeyCategories())
	return category, nil
}

// UpdateCategory re-checks uniqueness against every other category; keeping
// the current name or slug is not a conflict.
func (s *categoryService) UpdateCategory(ctx context.Context, id int, req models.UpdateCategoryRequest) (*models.Category, error) {
	var category *models.Category
	var oldSlug string
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		category, err = tx.Categories.GetByID(ctx, id)
		if repositories.IsNotFound(err) {
			return models.ErrCategoryNotFound
		}
		if err != nil {
			return err
		}
		oldSlug = category.Slug

		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			category.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			category.Slug = strings.TrimSpace(*req.Slug)
		}
		if req.Description != nil {
			category.Description = req.Description
		}

		taken, err := tx.Categories.NameOrSlugTaken(ctx, category.Name, category.Slug, id)
		if err != nil {
			return err
		}
		if taken {
			return models.ErrCategoryExists
		}
		return tx.Categories.Update(ctx, category)
	})
	if repositories.IsDuplicate(err) {
		return nil, models.ErrCategoryExists
	}
	if err != nil {
		return nil, err
	}

	s.evict(ctx, cache.KeyCategories(), cache.KeyCategory(id), cache.KeyCategorySlug(oldSlug), cache.KeyCategorySlug(category.Slug))
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int) error {
	category, err := s.store.Categories.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return models.ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.store.Categories.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, cache.KeyCategories(), cache.KeyCategory(id), cache.KeyCategorySlug(category.Slug))
	return nil
}

func (s *categoryService) GetBlogCategories(ctx context.Context, blogID int) ([]models.BlogCategory, error) {
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, err
	}
	return s.store.Categories.ForBlog(ctx, blogID)
}

func (s *categoryService) AssignCategory(ctx context.Context, blogID, categoryID int) (*models.BlogCategory, error) {
	link := &models.BlogCategory{BlogID: blogID, CategoryID: categoryID}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		if _, err := tx.Categories.GetByID(ctx, categoryID); err != nil {
			if repositories.IsNotFound(err) {
				return models.ErrCategoryNotFound
			}
			return err
		}
		assigned, err := tx.Categories.Assigned(ctx, blogID, categoryID)
		if err != nil {
			return err
		}
		if assigned {
			return models.NewConflictError("Category already assigned to this blog")
		}
		return tx.Categories.Assign(ctx, link)
	})
	if repositories.IsForeignKeyViolation(err) {
		return nil, models.NewNotFoundError("Blog or category not found")
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *categoryService) UnassignCategory(ctx context.Context, blogID, categoryID int) error {
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return err
	}
	removed, err := s.store.Categories.Unassign(ctx, blogID, categoryID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Category not assigned to this blog")
	}
	return nil
}

func (s *categoryService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		Logger.Log.WithError(err).WithField("key", key).Warn("read category cache")
		return false
	}
	return ok
}

func (s *categoryService) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		Logger.Log.WithError(err).WithField("key", key).Warn("write category cache")
	}
}

func (s *categoryService) evict(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		Logger.Log.WithError(err).Warn("evict category cache")
	}
}
