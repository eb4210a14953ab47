package repositories

import (
	"context"
	"time"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	Upsert(ctx context.Context, entry *models.History) error
	ListForUser(ctx context.Context, userID string, page models.PageParams) ([]models.BlogEntryDetail, int64, error)
	List(ctx context.Context, page models.PageParams) ([]models.BlogEntryDetail, int64, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert records that the user read the blog. A repeated entry keeps its
// row and only moves CreatedAt forward.
func (r *historyRepository) Upsert(ctx context.Context, entry *models.History) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"created_at"}),
			},
			clause.Returning{},
		).
		Create(entry).Error
	return errors.Wrap(err, "upsert history")
}

func (r *historyRepository) list(ctx context.Context, page models.PageParams, scope func(*gorm.DB) *gorm.DB) ([]models.BlogEntryDetail, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Table("history e").Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count history")
	}

	userJoin, profileJoin := personJoins("b.author_id")
	var rows []blogEntryRow
	err := r.db.WithContext(ctx).
		Table("history e").
		Select(blogEntryColumns).
		Joins("JOIN blog b ON b.id = e.blog_id").
		Joins(userJoin).
		Joins(profileJoin).
		Scopes(scope).
		Order("e.created_at desc, e.id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list history")
	}
	return blogEntryDetails(rows), total, nil
}

func (r *historyRepository) ListForUser(ctx context.Context, userID string, page models.PageParams) ([]models.BlogEntryDetail, int64, error) {
	return r.list(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("e.user_id = ?", userID)
	})
}

func (r *historyRepository) List(ctx context.Context, page models.PageParams) ([]models.BlogEntryDetail, int64, error) {
	return r.list(ctx, page, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *historyRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.History{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete history %d", id)
	}
	return res.RowsAffected > 0, nil
}
