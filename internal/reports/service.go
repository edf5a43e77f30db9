package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/logger"
	"github.com/investguard/investguard/pkg/validation"
)

// validTransitions maps each report status to the statuses it may move to
var validTransitions = map[string][]string{
	StatusPending:       {StatusInvestigating, StatusDismissed},
	StatusInvestigating: {StatusConfirmed, StatusDismissed},
}

// Service implements report intake and triage
type Service struct {
	repo ReportRepository
}

// NewService creates a new reports service
func NewService(repo ReportRepository) *Service {
	return &Service{repo: repo}
}

// Submit validates and stores a community fraud report
func (s *Service) Submit(ctx context.Context, req *SubmitReportRequest) (*Report, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), engine.ErrInvalidInput)
	}

	now := time.Now().UTC()
	report := &Report{
		ID:            uuid.New(),
		ReporterEmail: req.ReporterEmail,
		ContentURL:    req.ContentURL,
		Description:   req.Description,
		Platform:      req.Platform,
		FraudType:     req.FraudType,
		AmountLost:    req.AmountLost,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("fraud report submitted",
		zap.String("report_id", report.ID.String()),
		zap.String("fraud_type", report.FraudType),
	)

	return report, nil
}

// GetReport retrieves a single report
func (s *Service) GetReport(ctx context.Context, reportID uuid.UUID) (*Report, error) {
	return s.repo.GetReportByID(ctx, reportID)
}

// ListRecentReports retrieves reports newest first
func (s *Service) ListRecentReports(ctx context.Context, limit, offset int) ([]*Report, int64, error) {
	return s.repo.ListRecentReports(ctx, limit, offset)
}

// UpdateStatus moves a report along the triage flow. Terminal statuses do
// not move again.
func (s *Service) UpdateStatus(ctx context.Context, reportID uuid.UUID, req *UpdateStatusRequest) (*Report, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), engine.ErrInvalidInput)
	}

	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(report.Status, req.Status) {
		return nil, fmt.Errorf("cannot move report from %s to %s: %w", report.Status, req.Status, engine.ErrInvalidInput)
	}

	if err := s.repo.UpdateReportStatus(ctx, reportID, req.Status); err != nil {
		return nil, err
	}

	report.Status = req.Status
	report.UpdatedAt = time.Now().UTC()
	return report, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
