package services

import (
	"context"
	"strings"
	"time"

	"portfolio-api/models"
	"portfolio-api/repositories"
)

type ReportService interface {
	GetReports(ctx context.Context, params models.ReportListParams) ([]models.Report, models.Pagination, error)
	GetReport(ctx context.Context, id int) (*models.Report, error)
	CreateReport(ctx context.Context, req models.CreateReportRequest) (*models.Report, error)
	UpdateStatus(ctx context.Context, id int, status models.ReportStatus) (*models.Report, error)
}

type reportService struct {
	store *repositories.Store
	now   func() time.Time
}

func NewReportService(store *repositories.Store) ReportService {
	return &reportService{store: store, now: time.Now}
}

func (s *reportService) GetReports(ctx context.Context, params models.ReportListParams) ([]models.Report, models.Pagination, error) {
	params.PageParams.Normalize()
	if params.Status != "" && !models.ReportStatus(params.Status).Valid() {
		return nil, models.Pagination{}, models.NewValidationError("Invalid status %q", params.Status)
	}
	reports, total, err := s.store.Reports.List(ctx, params)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reports, models.NewPagination(params.PageParams, total), nil
}

func (s *reportService) GetReport(ctx context.Context, id int) (*models.Report, error) {
	report, err := s.store.Reports.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, models.ErrReportNotFound
	}
	return report, err
}

// CreateReport files a pending report after checking that the reporter and
// the reported content both exist.
func (s *reportService) CreateReport(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	reason := strings.TrimSpace(req.Reason)
	if strings.TrimSpace(req.ReporterID) == "" || reason == "" || req.ContentID == "" {
		return nil, models.NewValidationError("reporterId, contentType, contentId and reason are required")
	}
	kind, ok := models.ParseContentKind(req.ContentType)
	if !ok {
		return nil, models.NewValidationError("Invalid content type %q", req.ContentType)
	}

	report := &models.Report{
		ReporterID:  req.ReporterID,
		ContentType: kind,
		ContentID:   string(req.ContentID),
		Reason:      reason,
		Description: req.Description,
		Status:      models.ReportPending,
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireUser(ctx, tx, req.ReporterID, "Reporter not found"); err != nil {
			return err
		}
		if err := requireContent(ctx, tx, report.Target()); err != nil {
			return err
		}
		return tx.Reports.Create(ctx, report)
	})
	if err = referenceError(err, "Reporter not found"); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateStatus moves a pending report to a terminal status and stamps
// resolvedAt. Terminal reports cannot change again.
func (s *reportService) UpdateStatus(ctx context.Context, id int, status models.ReportStatus) (*models.Report, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid status %q", status)
	}

	var report *models.Report
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		report, err = tx.Reports.LockByID(ctx, id)
		if repositories.IsNotFound(err) {
			return models.ErrReportNotFound
		}
		if err != nil {
			return err
		}
		if !report.Status.CanTransition(status) {
			return models.NewConflictError("Report cannot move from %s to %s", report.Status, status)
		}

		var resolvedAt *time.Time
		if status.Terminal() {
			now := s.now()
			resolvedAt = &now
		}
		if err := tx.Reports.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
			return err
		}
		report.Status = status
		report.ResolvedAt = resolvedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// requireContent checks the reported content against the table its kind
// names. Blogs and comments need a positive integer id.
func requireContent(ctx context.Context, store *repositories.Store, target models.ReportedContent) error {
	switch target.Kind {
	case models.ContentUser:
		return requireUser(ctx, store, target.ID, "Reported user not found")
	case models.ContentBlog:
		id, ok := models.FlexibleID(target.ID).Int()
		if !ok {
			return models.NewValidationError("Invalid blog ID")
		}
		return requireBlog(ctx, store, id)
	case models.ContentComment:
		id, ok := models.FlexibleID(target.ID).Int()
		if !ok {
			return models.NewValidationError("Invalid comment ID")
		}
		found, err := store.Comments.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return models.ErrCommentNotFound
		}
		return nil
	}
	return models.NewValidationError("Invalid content type %q", target.Kind)
}
