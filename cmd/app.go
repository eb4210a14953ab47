package cmd

import (
	"context"

	"portfolio-api/cache"
	"portfolio-api/config"
	"portfolio-api/events"
	"portfolio-api/proxy"
	"portfolio-api/repositories"
	"portfolio-api/router"
	"portfolio-api/services"
	Logger "portfolio-api/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// app is everything serve starts and later shuts down.
type app struct {
	engine   *gin.Engine
	broker   *events.Broker
	consumer *events.Consumer
}

// newApp wires repositories, services and the router. When AMQP_URL is set,
// notifications go through the broker and a consumer bound to ctx persists
// them.
func newApp(ctx context.Context, cfg *config.Config, db *gorm.DB) (*app, error) {
	var balancer *proxy.Balancer
	if backends := cfg.Backends(); len(backends) > 0 {
		var err error
		if balancer, err = proxy.New(backends); err != nil {
			return nil, err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	store := repositories.NewStore(db)
	c := cache.New(cfg.CacheDriver, cfg.CacheTTL, cfg.RedisAddr(), cfg.RedisPassword)

	a := &app{}
	var notifier events.Notifier = events.NewStoreNotifier(store.Notifications)
	if cfg.AMQPURL != "" {
		broker, err := events.NewBroker(cfg.AMQPURL)
		if err != nil {
			return nil, err
		}
		deliveries, err := broker.Deliveries()
		if err != nil {
			broker.Close()
			return nil, err
		}
		a.broker = broker
		a.consumer = events.NewConsumer(notifier)
		go a.consumer.Run(ctx, deliveries)
		notifier = events.NewBrokerNotifier(broker)
		Logger.Log.Info("notifications routed through AMQP broker")
	}

	deps := router.Deps{
		Blogs:         services.NewBlogService(store, c, cfg.CacheTTL),
		Revisions:     services.NewRevisionService(store),
		Categories:    services.NewCategoryService(store, c, cfg.CacheTTL),
		Interactions:  services.NewInteractionService(store, notifier),
		Users:         services.NewUserService(store, notifier),
		Notifications: services.NewNotificationService(store),
		Reports:       services.NewReportService(store),
		DB:            sqlDB,
		JWTKey:        cfg.JWTKey(),
		AllowOrigins:  cfg.AllowOrigins(),
		Proxy:         balancer,
	}

	a.engine = router.Setup(deps)
	return a, nil
}

// close waits for the consumer to drain, then drops the broker connection.
// The consumer stops when the context passed to newApp is cancelled.
func (a *app) close() {
	if a.broker == nil {
		return
	}
	if a.consumer != nil {
		<-a.consumer.Done()
	}
	if err := a.broker.Close(); err != nil {
		Logger.Log.WithError(err).Warn("close broker")
	}
}
