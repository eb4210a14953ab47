package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id int) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, page models.PageParams) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id int) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(notification).Error, "create notification")
}

func (r *notificationRepository) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get notification %d", id)
	}
	return &notification, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, page models.PageParams) ([]models.Notification, int64, error) {
	notifications := []models.Notification{}
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("COALESCE(is_read, 0) = 0")
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count notifications")
	}
	err := query.Order("created_at desc, id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list notifications")
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", 1)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "mark notification %d read", id)
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete notification %d", id)
	}
	return res.RowsAffected > 0, nil
}
