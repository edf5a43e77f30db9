package network

import (
	"context"

	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/alerts"
)

// ConnectionRepository defines the persistence operations the service depends on
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, record *ConnectionRecord) error
	ListConnections(ctx context.Context) ([]*ConnectionRecord, error)
	UpdateSuspiciousScore(ctx context.Context, connectionID uuid.UUID, score float64) error
}

// AlertSource supplies the active high-severity alerts whose contents seed
// the cross-signal severity index
type AlertSource interface {
	ActiveHighSeverityAlerts(ctx context.Context) ([]*alerts.Alert, error)
}
