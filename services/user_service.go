package services

import (
	"context"
	"strings"
	"time"

	"portfolio-api/events"
	"portfolio-api/models"
	"portfolio-api/repositories"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// CredentialProvider is the provider id the auth provider uses for
// email and password accounts.
const CredentialProvider = "credential"

type UserService interface {
	GetUsers(ctx context.Context, page models.PageParams) ([]models.User, models.Pagination, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, id string) error

	GetUserBlogs(ctx context.Context, id string, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error)
	GetBookmarks(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error)
	GetHistory(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error)

	Follow(ctx context.Context, followingID, followerID string) (*models.Follower, error)
	Unfollow(ctx context.Context, followingID, followerID string) error
	GetFollowing(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error)
	GetFollowers(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error)

	GetNotifications(ctx context.Context, id string, params models.NotificationListParams) ([]models.Notification, models.Pagination, error)

	// Provision creates a user with a credential account for local
	// development; sign up itself belongs to the auth provider.
	Provision(ctx context.Context, req models.ProvisionUserRequest) (*models.User, error)
}

type userService struct {
	store    *repositories.Store
	notifier events.Notifier
}

func NewUserService(store *repositories.Store, notifier events.Notifier) UserService {
	return &userService{store: store, notifier: notifier}
}

func (s *userService) GetUsers(ctx context.Context, page models.PageParams) ([]models.User, models.Pagination, error) {
	page.Normalize()
	users, total, err := s.store.Users.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, total), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, models.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile patches the given fields onto the user's profile, creating
// the profile on first use.
func (s *userService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile *models.UserProfile
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireUser(ctx, tx, id, "User not found"); err != nil {
			return err
		}

		var err error
		profile, err = tx.Users.GetProfile(ctx, id)
		created := repositories.IsNotFound(err)
		if created {
			profile = &models.UserProfile{UserID: id}
		} else if err != nil {
			return err
		}

		if err := copier.CopyWithOption(profile, &req, copier.Option{IgnoreEmpty: true}); err != nil {
			return errors.Wrap(err, "apply profile patch")
		}
		if created {
			return tx.Users.CreateProfile(ctx, profile)
		}
		return tx.Users.UpdateProfile(ctx, profile)
	})
	if err = referenceError(err, "User not found"); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.store.Users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *userService) GetUserBlogs(ctx context.Context, id string, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error) {
	params.PageParams.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	params.Author = id
	blogs, total, err := s.store.Blogs.GetList(ctx, params)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return blogs, models.NewPagination(params.PageParams, total), nil
}

func (s *userService) GetBookmarks(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	entries, total, err := s.store.Bookmarks.ListForUser(ctx, id, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return entries, models.NewPagination(page, total), nil
}

func (s *userService) GetHistory(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	entries, total, err := s.store.History.ListForUser(ctx, id, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return entries, models.NewPagination(page, total), nil
}

// Follow makes followerID follow followingID. Self follows are rejected
// before any lookup.
func (s *userService) Follow(ctx context.Context, followingID, followerID string) (*models.Follower, error) {
	if strings.TrimSpace(followerID) == "" {
		return nil, models.NewValidationError("followerId is required")
	}
	if followerID == followingID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	follow := &models.Follower{FollowerID: followerID, FollowingID: followingID}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireUser(ctx, tx, followingID, "User to follow not found"); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, followerID, "Follower not found"); err != nil {
			return err
		}
		following, err := tx.Followers.Exists(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if following {
			return models.NewConflictError("Already following this user")
		}
		return tx.Followers.Create(ctx, follow)
	})
	if err = referenceError(err, "User not found"); err != nil {
		return nil, err
	}

	deliver(ctx, s.notifier, &models.Notification{
		UserID:  followingID,
		Type:    models.NotificationFollow,
		Title:   "New follower",
		Message: "Someone started following you",
	})
	return follow, nil
}

func (s *userService) Unfollow(ctx context.Context, followingID, followerID string) error {
	if strings.TrimSpace(followerID) == "" {
		return models.NewValidationError("followerId is required")
	}
	if err := requireUser(ctx, s.store, followingID, "User not found"); err != nil {
		return err
	}
	removed, err := s.store.Followers.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Not following this user")
	}
	return nil
}

func (s *userService) GetFollowing(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	edges, total, err := s.store.Followers.Following(ctx, id, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return edges, models.NewPagination(page, total), nil
}

func (s *userService) GetFollowers(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error) {
	page.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	edges, total, err := s.store.Followers.Followers(ctx, id, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return edges, models.NewPagination(page, total), nil
}

func (s *userService) GetNotifications(ctx context.Context, id string, params models.NotificationListParams) ([]models.Notification, models.Pagination, error) {
	params.PageParams.Normalize()
	if err := requireUser(ctx, s.store, id, "User not found"); err != nil {
		return nil, models.Pagination{}, err
	}
	notifications, total, err := s.store.Notifications.ListForUser(ctx, id, params.Unread, params.PageParams)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return notifications, models.NewPagination(params.PageParams, total), nil
}

func (s *userService) Provision(ctx context.Context, req models.ProvisionUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	if _, err := s.store.Users.GetByEmail(ctx, email); err == nil {
		return nil, models.NewConflictError("User with email %s already exists", email)
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	password := string(hashed)

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := &models.Account{
		ID:         uuid.NewString(),
		AccountID:  user.ID,
		UserID:     user.ID,
		ProviderID: CredentialProvider,
		Password:   &password,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Users.Create(ctx, user, account); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, models.NewConflictError("User with email %s already exists", email)
		}
		return nil, err
	}
	return user, nil
}
