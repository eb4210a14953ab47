package services

import (
	"context"

	"portfolio-api/models"
	"portfolio-api/repositories"
)

type NotificationService interface {
	MarkRead(ctx context.Context, id int) (*models.Notification, error)
	DeleteNotification(ctx context.Context, id int) error
}

type notificationService struct {
	store *repositories.Store
}

func NewNotificationService(store *repositories.Store) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) MarkRead(ctx context.Context, id int) (*models.Notification, error) {
	updated, err := s.store.Notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, models.ErrNotificationNotFound
	}
	notification, err := s.store.Notifications.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, models.ErrNotificationNotFound
	}
	return notification, err
}

func (s *notificationService) DeleteNotification(ctx context.Context, id int) error {
	deleted, err := s.store.Notifications.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrNotificationNotFound
	}
	return nil
}
