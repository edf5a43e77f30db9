package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investguard/investguard/internal/engine"
)

// Repository handles user report persistence
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ ReportRepository = (*Repository)(nil)

// NewRepository creates a new reports repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateReport stores a submitted report
func (r *Repository) CreateReport(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO user_reports (
			id, reporter_email, content_url, description, platform,
			fraud_type, amount_lost, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.ReporterEmail,
		report.ContentURL,
		report.Description,
		report.Platform,
		report.FraudType,
		report.AmountLost,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetReportByID retrieves a report
func (r *Repository) GetReportByID(ctx context.Context, reportID uuid.UUID) (*Report, error) {
	query := `
		SELECT id, reporter_email, content_url, description, platform,
		       fraud_type, amount_lost, status, created_at, updated_at
		FROM user_reports
		WHERE id = $1
	`

	var report Report
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&report.ID,
		&report.ReporterEmail,
		&report.ContentURL,
		&report.Description,
		&report.Platform,
		&report.FraudType,
		&report.AmountLost,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %s: %w", reportID, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

// ListRecentReports retrieves reports newest first with a total count
func (r *Repository) ListRecentReports(ctx context.Context, limit, offset int) ([]*Report, int64, error) {
	query := `
		SELECT id, reporter_email, content_url, description, platform,
		       fraud_type, amount_lost, status, created_at, updated_at
		FROM user_reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var report Report
		err := rows.Scan(
			&report.ID,
			&report.ReporterEmail,
			&report.ContentURL,
			&report.Description,
			&report.Platform,
			&report.FraudType,
			&report.AmountLost,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reports: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_reports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	return reports, total, nil
}

// UpdateReportStatus transitions a report's status
func (r *Repository) UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status string) error {
	query := `
		UPDATE user_reports
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, reportID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s: %w", reportID, engine.ErrNotFound)
	}

	return nil
}
