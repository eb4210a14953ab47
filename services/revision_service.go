package services

import (
	"context"
	"strings"

	"portfolio-api/models"
	"portfolio-api/repositories"
)

type RevisionService interface {
	GetRevisions(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogRevision, models.Pagination, error)
	GetRevision(ctx context.Context, blogID, version int) (*models.BlogRevision, error)
	CreateRevision(ctx context.Context, blogID int, req models.CreateRevisionRequest) (*models.BlogRevision, error)
}

type revisionService struct {
	store *repositories.Store
}

func NewRevisionService(store *repositories.Store) RevisionService {
	return &revisionService{store: store}
}

func (s *revisionService) GetRevisions(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogRevision, models.Pagination, error) {
	page.Normalize()
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, models.Pagination{}, err
	}
	revisions, total, err := s.store.Revisions.GetList(ctx, blogID, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return revisions, models.NewPagination(page, total), nil
}

func (s *revisionService) GetRevision(ctx context.Context, blogID, version int) (*models.BlogRevision, error) {
	if version < 1 {
		return nil, models.NewValidationError("Invalid version number")
	}
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, err
	}
	revision, err := s.store.Revisions.GetByVersion(ctx, blogID, version)
	if repositories.IsNotFound(err) {
		return nil, models.ErrRevisionNotFound
	}
	return revision, err
}

// CreateRevision appends a snapshot at the next version. The parent blog row
// stays locked until commit, so concurrent writers for one blog take turns
// and never compute the same version.
func (s *revisionService) CreateRevision(ctx context.Context, blogID int, req models.CreateRevisionRequest) (*models.BlogRevision, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	revision := &models.BlogRevision{
		BlogID:  blogID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    normalizeTags(req.Tags),
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Blogs.LockByID(ctx, blogID); err != nil {
			if repositories.IsNotFound(err) {
				return models.ErrBlogNotFound
			}
			return err
		}

		latest, err := tx.Revisions.LatestVersion(ctx, blogID)
		if err != nil {
			return err
		}
		revision.Version = latest + 1
		return tx.Revisions.Create(ctx, revision)
	})
	if repositories.IsDuplicate(err) {
		return nil, models.NewConflictError("Revision version already exists")
	}
	if err != nil {
		return nil, err
	}
	return revision, nil
}

// requireBlog returns ErrBlogNotFound unless the blog exists.
func requireBlog(ctx context.Context, store *repositories.Store, blogID int) error {
	ok, err := store.Blogs.Exists(ctx, blogID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrBlogNotFound
	}
	return nil
}

// requireUser returns a not found error with message unless the user exists.
func requireUser(ctx context.Context, store *repositories.Store, userID, message string) error {
	ok, err := store.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrorNotFound{Message: message}
	}
	return nil
}
