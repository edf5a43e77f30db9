package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/engine"
)

// Alert statuses
const (
	StatusActive        = "active"
	StatusResolved      = "resolved"
	StatusFalsePositive = "false_positive"
)

// Alert is a persisted fraud alert raised by a high-risk analysis
type Alert struct {
	ID             uuid.UUID       `json:"id"`
	ContentType    string          `json:"content_type"`
	Content        string          `json:"content"`
	RiskScore      float64         `json:"risk_score"`
	Severity       engine.Severity `json:"severity"`
	Indicators     []string        `json:"indicators"`
	SourcePlatform string          `json:"source_platform"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
}

// AnalysisRecord is a row in the analysis history log
type AnalysisRecord struct {
	ID               uuid.UUID              `json:"id"`
	ContentHash      string                 `json:"content_hash"`
	ContentType      string                 `json:"content_type"`
	RiskScore        float64                `json:"risk_score"`
	Result           *engine.AnalysisResult `json:"result"`
	ProcessingTimeMs float64                `json:"processing_time_ms"`
	CreatedAt        time.Time              `json:"created_at"`
}

// AnalyzeRequest is the analysis submission payload
type AnalyzeRequest struct {
	Content        string `json:"content" binding:"required"`
	ContentType    string `json:"content_type" binding:"required"`
	SourcePlatform string `json:"source_platform"`
}

// AnalyzeResponse is returned from an analysis run
type AnalyzeResponse struct {
	RiskScore  float64         `json:"risk_score"`
	Indicators []string        `json:"indicators"`
	Severity   engine.Severity `json:"severity"`
	Cached     bool            `json:"cached"`
	AlertID    *uuid.UUID      `json:"alert_id,omitempty"`
}

// ResolveRequest closes out an alert
type ResolveRequest struct {
	FalsePositive bool `json:"false_positive"`
}

// DashboardStats summarizes the alert and report workload
type DashboardStats struct {
	TotalAlerts    int64 `json:"total_alerts"`
	ActiveAlerts   int64 `json:"active_alerts"`
	HighRiskAlerts int64 `json:"high_risk_alerts"`
	PendingReports int64 `json:"pending_reports"`
}

// RiskDistribution counts alerts per severity tier
type RiskDistribution struct {
	Low      int64 `json:"low"`
	Medium   int64 `json:"medium"`
	High     int64 `json:"high"`
	Critical int64 `json:"critical"`
}
