package reports

import (
	"context"

	"github.com/google/uuid"
)

// ReportRepository defines the persistence operations the service depends on
type ReportRepository interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReportByID(ctx context.Context, reportID uuid.UUID) (*Report, error)
	ListRecentReports(ctx context.Context, limit, offset int) ([]*Report, int64, error)
	UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status string) error
}
