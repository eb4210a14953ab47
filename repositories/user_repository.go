package repositories

import (
	"context"
	"time"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page models.PageParams) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User, account *models.Account) error
	Delete(ctx context.Context, id string) (bool, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.User{}, "id = ?", id)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get user %s", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get user by email %s", email)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page models.PageParams) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	err := query.Preload("Profile").
		Order(`"user".created_at desc`).
		Scopes(paginate(page.Page, page.Limit)).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return users, total, nil
}

// Create inserts the user and, when given, its credential account in one
// transaction.
func (r *userRepository) Create(ctx context.Context, user *models.User, account *models.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return errors.Wrap(err, "create user")
		}
		if account == nil {
			return nil
		}
		account.UserID = user.ID
		if err := tx.Create(account).Error; err != nil {
			return errors.Wrap(err, "create account")
		}
		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete user %s", id)
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get profile of %s", userID)
	}
	return &profile, nil
}

func (r *userRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(profile).Error, "create profile")
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"first_name":    profile.FirstName,
			"last_name":     profile.LastName,
			"bio":           profile.Bio,
			"avatar":        profile.Avatar,
			"website":       profile.Website,
			"location":      profile.Location,
			"date_of_birth": profile.DateOfBirth,
			"updated_at":    profile.UpdatedAt,
		}).Error
	return errors.Wrap(err, "update profile")
}
