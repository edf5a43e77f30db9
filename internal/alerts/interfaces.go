package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AlertRepository defines the persistence operations the service depends on
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert *Alert) error
	GetAlertByID(ctx context.Context, alertID uuid.UUID) (*Alert, error)
	ListRecentAlerts(ctx context.Context, limit, offset int) ([]*Alert, int64, error)
	UpdateAlertStatus(ctx context.Context, alertID uuid.UUID, status string, resolvedAt time.Time) error
	CreateAnalysisRecord(ctx context.Context, record *AnalysisRecord) error
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetRiskDistribution(ctx context.Context) (*RiskDistribution, error)
	ListActiveHighSeverityAlerts(ctx context.Context) ([]*Alert, error)
}

// AnalysisCache caches analysis results keyed by content hash
type AnalysisCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}
