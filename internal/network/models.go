package network

import (
	"time"

	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/engine"
)

// ConnectionRecord is a persisted entity-to-entity connection observation
type ConnectionRecord struct {
	ID              uuid.UUID `json:"id"`
	SourceEntity    string    `json:"source_entity"`
	TargetEntity    string    `json:"target_entity"`
	ConnectionType  string    `json:"connection_type"`
	Strength        float64   `json:"strength"`
	SuspiciousScore float64   `json:"suspicious_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateConnectionRequest records an observed connection
type CreateConnectionRequest struct {
	SourceEntity   string  `json:"source_entity" binding:"required"`
	TargetEntity   string  `json:"target_entity" binding:"required"`
	ConnectionType string  `json:"connection_type" binding:"required"`
	Strength       float64 `json:"strength" binding:"gte=0,lte=1"`
}

// AnalyzeRequest optionally carries an ad-hoc connection set. When empty,
// all stored connections are analyzed.
type AnalyzeRequest struct {
	Connections []engine.Connection `json:"connections"`
}

// Visualization is the graph payload rendered by the dashboard
type Visualization struct {
	Nodes    []string                `json:"nodes"`
	Edges    []engine.SuspiciousEdge `json:"edges"`
	Clusters [][]string              `json:"clusters"`
}
