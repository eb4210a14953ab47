// Package testutil starts disposable postgres and RabbitMQ containers for
// integration tests. Tests using it are skipped with -short or when no
// container runtime is available.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"portfolio-api/config"
	"portfolio-api/migrations"
	"portfolio-api/models"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	gormpg "gorm.io/driver/postgres"
)

// tables lists every table the migrations create, children first.
var tables = []string{
	"reports", "notifications", "followers", "history", "blog_views",
	"comments", "bookmarks", "likes", "blog_categories", "categories",
	"blog_revisions", "blog", "user_profiles", "verification", "account",
	"session", `"user"`,
}

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped with -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// Postgres starts a migrated postgres container and returns a gorm handle
// configured like the server's.
func Postgres(t *testing.T) *gorm.DB {
	t.Helper()
	skipUnlessIntegration(t)
	ctx := context.Background()

	c, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("portfolio_test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)))
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("could not terminate postgres container: %v", err)
		}
	})

	connURL, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	if err := migrations.Up(connURL); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	db, err := gorm.Open(gormpg.Open(connURL), config.GormConfig(false))
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// RabbitMQ starts a broker container and returns its AMQP URL.
func RabbitMQ(t *testing.T) string {
	t.Helper()
	skipUnlessIntegration(t)
	ctx := context.Background()

	c, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine",
		rabbitmq.WithAdminUsername("guest"),
		rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("could not terminate rabbitmq container: %v", err)
		}
	})

	url, err := c.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}
	return url
}

// Reset empties every table and restarts identity sequences.
func Reset(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}

// SeedUser inserts a user named name with a unique email.
func SeedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Omit("Profile").Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedBlog inserts a blog written by authorID.
func SeedBlog(t *testing.T, db *gorm.DB, authorID, title string, tags ...string) *models.Blog {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	blog := &models.Blog{Title: title, Content: title + " content", Tags: tags, AuthorID: authorID}
	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	return blog
}
