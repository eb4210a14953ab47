package events

import (
	"context"

	"portfolio-api/models"
	"portfolio-api/repositories"
)

// Notifier delivers a notification to its recipient.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// StoreNotifier writes notifications straight to the database.
type StoreNotifier struct {
	repo repositories.NotificationRepository
}

func NewStoreNotifier(repo repositories.NotificationRepository) *StoreNotifier {
	return &StoreNotifier{repo: repo}
}

func (s *StoreNotifier) Notify(ctx context.Context, n *models.Notification) error {
	return s.repo.Create(ctx, n)
}

// BrokerNotifier publishes notifications; a Consumer persists them.
type BrokerNotifier struct {
	producer Producer
}

func NewBrokerNotifier(producer Producer) *BrokerNotifier {
	return &BrokerNotifier{producer: producer}
}

func (b *BrokerNotifier) Notify(ctx context.Context, n *models.Notification) error {
	return b.producer.Publish(ctx, n)
}
