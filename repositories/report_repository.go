package repositories

import (
	"context"
	"time"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int) (*models.Report, error)
	LockByID(ctx context.Context, id int) (*models.Report, error)
	List(ctx context.Context, params models.ReportListParams) ([]models.Report, int64, error)
	UpdateStatus(ctx context.Context, id int, status models.ReportStatus, resolvedAt *time.Time) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Reporter").Create(report).Error, "create report")
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Preload("Reporter").First(&report, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get report %d", id)
	}
	return &report, nil
}

// LockByID loads the report with a row lock so concurrent status updates
// serialize.
func (r *reportRepository) LockByID(ctx context.Context, id int) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, id).Error
	if err != nil {
		return nil, errors.Wrapf(err, "lock report %d", id)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, params models.ReportListParams) ([]models.Report, int64, error) {
	reports := []models.Report{}
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Report{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count reports")
	}
	err := query.Preload("Reporter").
		Order("created_at desc, id desc").
		Scopes(paginate(params.Page, params.Limit)).
		Find(&reports).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list reports")
	}
	return reports, total, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id int, status models.ReportStatus, resolvedAt *time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      string(status),
			"resolved_at": resolvedAt,
		}).Error
	return errors.Wrapf(err, "update report %d status", id)
}
