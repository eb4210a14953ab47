package events

import (
	"context"
	"encoding/json"

	"portfolio-api/models"
	Logger "portfolio-api/utils/log"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationExchange = "notification_exchange"
	NotificationQueue    = "notification_created_queue"
	NotificationKey      = "notification.created"
)

type Producer interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// Broker owns one AMQP connection and channel used for both publishing and
// consuming notification events.
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewBroker(uri string) (*Broker, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to AMQP")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "could not open channel")
	}

	b := &Broker{conn: conn, ch: ch}
	if err := b.setup(); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Broker) setup() error {
	if err := b.ch.ExchangeDeclare(NotificationExchange, "direct", true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare exchange")
	}
	if _, err := b.ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare queue")
	}
	if err := b.ch.QueueBind(NotificationQueue, NotificationKey, NotificationExchange, false, nil); err != nil {
		return errors.Wrap(err, "bind queue")
	}
	return nil
}

func (b *Broker) Close() error {
	if err := b.ch.Close(); err != nil {
		return err
	}
	return b.conn.Close()
}

func (b *Broker) Publish(ctx context.Context, n *models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "encode notification")
	}
	err = b.ch.PublishWithContext(ctx, NotificationExchange, NotificationKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	return errors.Wrap(err, "could not publish notification")
}

// Deliveries starts consuming the notification queue with manual acks.
func (b *Broker) Deliveries() (<-chan amqp.Delivery, error) {
	msgs, err := b.ch.Consume(NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not consume notifications")
	}
	return msgs, nil
}

// Consumer persists notifications read from a delivery channel.
type Consumer struct {
	notifier Notifier
	done     chan struct{}
}

func NewConsumer(notifier Notifier) *Consumer {
	return &Consumer{notifier: notifier, done: make(chan struct{})}
}

// Run handles deliveries until ctx is cancelled or the channel closes.
// Malformed messages are dropped; messages whose write fails are requeued
// once and dropped if they were already redelivered.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			c.handle(ctx, d)
		}
	}
}

// Done is closed once Run has returned.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var n models.Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		Logger.Log.WithError(err).Warn("dropping malformed notification")
		d.Nack(false, false)
		return
	}
	n.ID = 0

	if err := c.notifier.Notify(ctx, &n); err != nil {
		Logger.Log.WithError(err).WithField("user_id", n.UserID).Error("persist notification")
		d.Nack(false, !d.Redelivered)
		return
	}
	d.Ack(false)
}
