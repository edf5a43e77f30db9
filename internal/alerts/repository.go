package alerts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investguard/investguard/internal/engine"
)

// Repository handles fraud alert and analysis history persistence
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ AlertRepository = (*Repository)(nil)

// NewRepository creates a new alerts repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateAlert creates a new fraud alert
func (r *Repository) CreateAlert(ctx context.Context, alert *Alert) error {
	indicatorsJSON, err := json.Marshal(alert.Indicators)
	if err != nil {
		return fmt.Errorf("failed to marshal indicators: %w", err)
	}

	query := `
		INSERT INTO fraud_alerts (
			id, content_type, content, risk_score, severity, indicators,
			source_platform, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Exec(ctx, query,
		alert.ID,
		alert.ContentType,
		alert.Content,
		alert.RiskScore,
		alert.Severity,
		indicatorsJSON,
		alert.SourcePlatform,
		alert.Status,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// GetAlertByID retrieves a fraud alert by ID
func (r *Repository) GetAlertByID(ctx context.Context, alertID uuid.UUID) (*Alert, error) {
	query := `
		SELECT id, content_type, content, risk_score, severity, indicators,
		       source_platform, status, created_at, resolved_at
		FROM fraud_alerts
		WHERE id = $1
	`

	alert, err := scanAlert(r.db.QueryRow(ctx, query, alertID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert %s: %w", alertID, engine.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return alert, nil
}

// ListRecentAlerts retrieves alerts newest first with a total count
func (r *Repository) ListRecentAlerts(ctx context.Context, limit, offset int) ([]*Alert, int64, error) {
	query := `
		SELECT id, content_type, content, risk_score, severity, indicators,
		       source_platform, status, created_at, resolved_at
		FROM fraud_alerts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM fraud_alerts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	return alerts, total, nil
}

// UpdateAlertStatus transitions an alert to a terminal status
func (r *Repository) UpdateAlertStatus(ctx context.Context, alertID uuid.UUID, status string, resolvedAt time.Time) error {
	query := `
		UPDATE fraud_alerts
		SET status = $2, resolved_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, alertID, status, resolvedAt)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alert %s: %w", alertID, engine.ErrNotFound)
	}

	return nil
}

// CreateAnalysisRecord appends a row to the analysis history log
func (r *Repository) CreateAnalysisRecord(ctx context.Context, record *AnalysisRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	query := `
		INSERT INTO analysis_history (
			id, content_hash, content_type, risk_score, result,
			processing_time_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Exec(ctx, query,
		record.ID,
		record.ContentHash,
		record.ContentType,
		record.RiskScore,
		resultJSON,
		record.ProcessingTimeMs,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}

	return nil
}

// GetDashboardStats aggregates alert and report counts for the dashboard
func (r *Repository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM fraud_alerts),
			(SELECT COUNT(*) FROM fraud_alerts WHERE status = 'active'),
			(SELECT COUNT(*) FROM fraud_alerts WHERE severity IN ('high', 'critical')),
			(SELECT COUNT(*) FROM user_reports WHERE status = 'pending')
	`

	var stats DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalAlerts,
		&stats.ActiveAlerts,
		&stats.HighRiskAlerts,
		&stats.PendingReports,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return &stats, nil
}

// GetRiskDistribution counts alerts per severity tier
func (r *Repository) GetRiskDistribution(ctx context.Context) (*RiskDistribution, error) {
	query := `
		SELECT severity, COUNT(*)
		FROM fraud_alerts
		GROUP BY severity
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk distribution: %w", err)
	}
	defer rows.Close()

	var dist RiskDistribution
	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan risk distribution: %w", err)
		}
		switch engine.Severity(severity) {
		case engine.SeverityLow:
			dist.Low = count
		case engine.SeverityMedium:
			dist.Medium = count
		case engine.SeverityHigh:
			dist.High = count
		case engine.SeverityCritical:
			dist.Critical = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk distribution: %w", err)
	}

	return &dist, nil
}

// ListActiveHighSeverityAlerts returns active alerts at high or critical
// severity, used to build the network cross-signal index
func (r *Repository) ListActiveHighSeverityAlerts(ctx context.Context) ([]*Alert, error) {
	query := `
		SELECT id, content_type, content, risk_score, severity, indicators,
		       source_platform, status, created_at, resolved_at
		FROM fraud_alerts
		WHERE status = 'active' AND severity IN ('high', 'critical')
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list high severity alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

func scanAlert(row pgx.Row) (*Alert, error) {
	var alert Alert
	var indicatorsJSON []byte
	var resolvedAt sql.NullTime

	err := row.Scan(
		&alert.ID,
		&alert.ContentType,
		&alert.Content,
		&alert.RiskScore,
		&alert.Severity,
		&indicatorsJSON,
		&alert.SourcePlatform,
		&alert.Status,
		&alert.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(indicatorsJSON) > 0 {
		if err := json.Unmarshal(indicatorsJSON, &alert.Indicators); err != nil {
			return nil, err
		}
	}
	if resolvedAt.Valid {
		alert.ResolvedAt = &resolvedAt.Time
	}

	return &alert, nil
}
