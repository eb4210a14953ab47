package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-api/events"
	"portfolio-api/models"
	"portfolio-api/repositories"
	Logger "portfolio-api/utils/log"
)

type InteractionService interface {
	GetComments(ctx context.Context, blogID int, page models.PageParams) ([]models.CommentDetail, models.Pagination, error)
	AddComment(ctx context.Context, blogID int, req models.CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int, req models.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error

	GetLikes(ctx context.Context, blogID int, page models.PageParams) ([]models.LikeDetail, models.Pagination, error)
	Like(ctx context.Context, blogID int, userID string) (*models.Like, error)
	Unlike(ctx context.Context, blogID int, userID string) error

	Bookmark(ctx context.Context, blogID int, userID string) (*models.Bookmark, error)
	Unbookmark(ctx context.Context, blogID int, userID string) error

	GetViews(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogView, models.Pagination, error)
	RecordView(ctx context.Context, blogID int, req models.CreateViewRequest) (*models.BlogView, error)

	AddHistory(ctx context.Context, blogID int, userID string) (*models.History, error)
	GetHistory(ctx context.Context, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error)
	DeleteHistory(ctx context.Context, id int) error
}

type interactionService struct {
	store    *repositories.Store
	notifier events.Notifier
}

func NewInteractionService(store *repositories.Store, notifier events.Notifier) InteractionService {
	return &interactionService{store: store, notifier: notifier}
}

func (s *interactionService) GetComments(ctx context.Context, blogID int, page models.PageParams) ([]models.CommentDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, models.Pagination{}, err
	}
	comments, total, err := s.store.Comments.ListForBlog(ctx, blogID, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return comments, models.NewPagination(page, total), nil
}

func (s *interactionService) AddComment(ctx context.Context, blogID int, req models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, models.NewValidationError("Content and userId are required")
	}

	comment := &models.Comment{BlogID: blogID, UserID: req.UserID, Content: content}
	var blog *models.Blog
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		blog, err = tx.Blogs.GetByID(ctx, blogID)
		if repositories.IsNotFound(err) {
			return models.ErrBlogNotFound
		}
		if err != nil {
			return err
		}
		if err := requireUser(ctx, tx, req.UserID, "User not found"); err != nil {
			return err
		}
		return tx.Comments.Create(ctx, comment)
	})
	if err = referenceError(err, "Blog or user not found"); err != nil {
		return nil, err
	}

	if blog.AuthorID != req.UserID {
		s.notify(ctx, &models.Notification{
			UserID:    blog.AuthorID,
			Type:      models.NotificationComment,
			Title:     "New comment",
			Message:   fmt.Sprintf("Someone commented on your post %q", blog.Title),
			RelatedID: &blog.ID,
		})
	}
	return comment, nil
}

func (s *interactionService) UpdateComment(ctx context.Context, id int, req models.UpdateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		comment, err = tx.Comments.GetByID(ctx, id)
		if repositories.IsNotFound(err) {
			return models.ErrCommentNotFound
		}
		if err != nil {
			return err
		}
		comment.Content = content
		return tx.Comments.UpdateContent(ctx, id, content)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *interactionService) DeleteComment(ctx context.Context, id int) error {
	deleted, err := s.store.Comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrCommentNotFound
	}
	return nil
}

func (s *interactionService) GetLikes(ctx context.Context, blogID int, page models.PageParams) ([]models.LikeDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, models.Pagination{}, err
	}
	likes, total, err := s.store.Likes.ListForBlog(ctx, blogID, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return likes, models.NewPagination(page, total), nil
}

func (s *interactionService) Like(ctx context.Context, blogID int, userID string) (*models.Like, error) {
	like := &models.Like{BlogID: blogID, UserID: userID}
	var blog *models.Blog
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		blog, err = tx.Blogs.GetByID(ctx, blogID)
		if repositories.IsNotFound(err) {
			return models.ErrBlogNotFound
		}
		if err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID, "User not found"); err != nil {
			return err
		}
		liked, err := tx.Likes.Exists(ctx, userID, blogID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewConflictError("Blog already liked by this user")
		}
		return tx.Likes.Create(ctx, like)
	})
	if err = referenceError(err, "Blog or user not found"); err != nil {
		return nil, err
	}

	if blog.AuthorID != userID {
		s.notify(ctx, &models.Notification{
			UserID:    blog.AuthorID,
			Type:      models.NotificationLike,
			Title:     "New like",
			Message:   fmt.Sprintf("Someone liked your post %q", blog.Title),
			RelatedID: &blog.ID,
		})
	}
	return like, nil
}

func (s *interactionService) Unlike(ctx context.Context, blogID int, userID string) error {
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return err
	}
	removed, err := s.store.Likes.Delete(ctx, userID, blogID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Blog not liked by this user")
	}
	return nil
}

func (s *interactionService) Bookmark(ctx context.Context, blogID int, userID string) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{BlogID: blogID, UserID: userID}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID, "User not found"); err != nil {
			return err
		}
		bookmarked, err := tx.Bookmarks.Exists(ctx, userID, blogID)
		if err != nil {
			return err
		}
		if bookmarked {
			return models.NewConflictError("Blog already bookmarked by this user")
		}
		return tx.Bookmarks.Create(ctx, bookmark)
	})
	if err = referenceError(err, "Blog or user not found"); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *interactionService) Unbookmark(ctx context.Context, blogID int, userID string) error {
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return err
	}
	removed, err := s.store.Bookmarks.Delete(ctx, userID, blogID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Blog not bookmarked by this user")
	}
	return nil
}

func (s *interactionService) GetViews(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogView, models.Pagination, error) {
	page.Normalize()
	if err := requireBlog(ctx, s.store, blogID); err != nil {
		return nil, models.Pagination{}, err
	}
	views, total, err := s.store.Views.ListForBlog(ctx, blogID, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return views, models.NewPagination(page, total), nil
}

// RecordView stores an anonymous view when no user id is given; a given
// user id must exist.
func (s *interactionService) RecordView(ctx context.Context, blogID int, req models.CreateViewRequest) (*models.BlogView, error) {
	view := &models.BlogView{
		BlogID:    blogID,
		UserID:    nonEmpty(req.UserID),
		IPAddress: nonEmpty(req.IPAddress),
		UserAgent: nonEmpty(req.UserAgent),
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		if view.UserID != nil {
			if err := requireUser(ctx, tx, *view.UserID, "User not found"); err != nil {
				return err
			}
		}
		return tx.Views.Create(ctx, view)
	})
	if err = referenceError(err, "Blog or user not found"); err != nil {
		return nil, err
	}
	return view, nil
}

// AddHistory records a read. Repeating it for the same user and blog keeps
// a single row and refreshes its timestamp.
func (s *interactionService) AddHistory(ctx context.Context, blogID int, userID string) (*models.History, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.NewValidationError("userId is required")
	}
	entry := &models.History{BlogID: blogID, UserID: userID, CreatedAt: time.Now()}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID, "User not found"); err != nil {
			return err
		}
		return tx.History.Upsert(ctx, entry)
	})
	if err = referenceError(err, "Blog or user not found"); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *interactionService) GetHistory(ctx context.Context, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	page.Normalize()
	entries, total, err := s.store.History.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return entries, models.NewPagination(page, total), nil
}

func (s *interactionService) DeleteHistory(ctx context.Context, id int) error {
	deleted, err := s.store.History.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrHistoryNotFound
	}
	return nil
}

func (s *interactionService) notify(ctx context.Context, n *models.Notification) {
	deliver(ctx, s.notifier, n)
}

// deliver sends n without failing the caller; the write it reports on has
// already committed.
func deliver(ctx context.Context, notifier events.Notifier, n *models.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		Logger.Log.WithError(err).
			WithField("user_id", n.UserID).
			WithField("type", n.Type).
			Warn("deliver notification")
	}
}

// referenceError turns a foreign key violation, raised when a checked row is
// deleted before the insert, into a not found error.
func referenceError(err error, message string) error {
	if repositories.IsForeignKeyViolation(err) {
		return models.ErrorNotFound{Message: message}
	}
	return err
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
