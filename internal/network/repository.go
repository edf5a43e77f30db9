package network

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/investguard/investguard/internal/engine"
)

// Repository handles network connection persistence
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ ConnectionRepository = (*Repository)(nil)

// NewRepository creates a new network repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateConnection records an observed connection
func (r *Repository) CreateConnection(ctx context.Context, record *ConnectionRecord) error {
	query := `
		INSERT INTO network_connections (
			id, source_entity, target_entity, connection_type, strength,
			suspicious_score, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.SourceEntity,
		record.TargetEntity,
		record.ConnectionType,
		record.Strength,
		record.SuspiciousScore,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}

	return nil
}

// ListConnections retrieves all stored connections
func (r *Repository) ListConnections(ctx context.Context) ([]*ConnectionRecord, error) {
	query := `
		SELECT id, source_entity, target_entity, connection_type, strength,
		       suspicious_score, created_at
		FROM network_connections
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var records []*ConnectionRecord
	for rows.Next() {
		var record ConnectionRecord
		err := rows.Scan(
			&record.ID,
			&record.SourceEntity,
			&record.TargetEntity,
			&record.ConnectionType,
			&record.Strength,
			&record.SuspiciousScore,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	return records, nil
}

// UpdateSuspiciousScore persists the score computed for a stored connection
func (r *Repository) UpdateSuspiciousScore(ctx context.Context, connectionID uuid.UUID, score float64) error {
	query := `
		UPDATE network_connections
		SET suspicious_score = $2
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, connectionID, score)
	if err != nil {
		return fmt.Errorf("failed to update suspicious score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("connection %s: %w", connectionID, engine.ErrNotFound)
	}

	return nil
}
