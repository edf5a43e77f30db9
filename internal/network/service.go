package network

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/logger"
)

// Edges below this score are noise on the dashboard graph; they still count
// toward node membership.
const visualizationThreshold = 5.0

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+91[\-\s]?)?[6-9][0-9]{9}`)
)

// Service implements connection recording and network analysis
type Service struct {
	engine *engine.Engine
	repo   ConnectionRepository
	alerts AlertSource
}

// NewService creates a new network service
func NewService(eng *engine.Engine, repo ConnectionRepository, alertSource AlertSource) *Service {
	return &Service{engine: eng, repo: repo, alerts: alertSource}
}

// RecordConnection stores an observed connection
func (s *Service) RecordConnection(ctx context.Context, req *CreateConnectionRequest) (*ConnectionRecord, error) {
	record := &ConnectionRecord{
		ID:             uuid.New(),
		SourceEntity:   req.SourceEntity,
		TargetEntity:   req.TargetEntity,
		ConnectionType: req.ConnectionType,
		Strength:       req.Strength,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateConnection(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListConnections retrieves all stored connections
func (s *Service) ListConnections(ctx context.Context) ([]*ConnectionRecord, error) {
	return s.repo.ListConnections(ctx)
}

// Analyze scores the connection set through the engine, fused with severity
// signals from active high-risk alerts, and returns the visualization
// payload. Scores of stored connections are persisted.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*Visualization, error) {
	severities, err := s.buildSeverityIndex(ctx)
	if err != nil {
		return nil, err
	}

	connections := req.Connections
	var stored []*ConnectionRecord
	if len(connections) == 0 {
		stored, err = s.repo.ListConnections(ctx)
		if err != nil {
			return nil, err
		}
		connections = make([]engine.Connection, len(stored))
		for i, record := range stored {
			connections[i] = engine.Connection{
				SourceEntity:   record.SourceEntity,
				TargetEntity:   record.TargetEntity,
				ConnectionType: record.ConnectionType,
				Strength:       record.Strength,
			}
		}
	}

	edges := s.engine.BuildGraph(connections, severities)

	// BuildGraph preserves input order, so edges line up with stored rows.
	for i, record := range stored {
		if err := s.repo.UpdateSuspiciousScore(ctx, record.ID, edges[i].SuspiciousScore); err != nil {
			logger.WithContext(ctx).Warn("failed to persist suspicious score",
				zap.String("connection_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}

	clusters := s.engine.Cluster(edges)

	visible := make([]engine.SuspiciousEdge, 0, len(edges))
	for _, edge := range edges {
		if edge.SuspiciousScore >= visualizationThreshold {
			visible = append(visible, edge)
		}
	}

	return &Visualization{
		Nodes:    clusters.Nodes,
		Edges:    visible,
		Clusters: clusters.Clusters,
	}, nil
}

// buildSeverityIndex extracts contact entities from active high and critical
// alerts. An entity seen at multiple severities keeps the highest.
func (s *Service) buildSeverityIndex(ctx context.Context) (engine.EntitySeverityIndex, error) {
	flagged, err := s.alerts.ActiveHighSeverityAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load high severity alerts: %w", err)
	}

	index := make(engine.EntitySeverityIndex)
	for _, alert := range flagged {
		for _, entity := range extractEntities(alert.Content) {
			if current, ok := index[entity]; !ok || rank(alert.Severity) > rank(current) {
				index[entity] = alert.Severity
			}
		}
	}
	return index, nil
}

func extractEntities(content string) []string {
	entities := emailPattern.FindAllString(content, -1)
	return append(entities, phonePattern.FindAllString(content, -1)...)
}

func rank(severity engine.Severity) int {
	switch severity {
	case engine.SeverityCritical:
		return 3
	case engine.SeverityHigh:
		return 2
	case engine.SeverityMedium:
		return 1
	}
	return 0
}
