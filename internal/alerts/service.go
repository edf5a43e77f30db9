package alerts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/logger"
)

// Content stored on an alert is capped so a pasted novel does not end up in
// the alerts table.
const maxAlertContentRunes = 1000

// Service implements content analysis and alert management
type Service struct {
	engine         *engine.Engine
	repo           AlertRepository
	cache          AnalysisCache
	cacheTTL       time.Duration
	alertThreshold float64
}

// NewService creates a new alerts service
func NewService(eng *engine.Engine, repo AlertRepository, cache AnalysisCache, cacheTTL time.Duration, alertThreshold float64) *Service {
	return &Service{
		engine:         eng,
		repo:           repo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		alertThreshold: alertThreshold,
	}
}

// Analyze runs the engine over submitted content. Results are cached by
// content hash; every run is logged to the analysis history, and content
// scoring at or above the alert threshold raises a fraud alert.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	start := time.Now()
	hash := contentHash(req.ContentType, req.Content)

	if result, ok := s.cachedResult(ctx, hash); ok {
		analysesTotal.WithLabelValues(string(result.Severity), "true").Inc()
		s.recordHistory(ctx, hash, req.ContentType, result, time.Since(start))
		return &AnalyzeResponse{
			RiskScore:  result.RiskScore,
			Indicators: result.Indicators,
			Severity:   result.Severity,
			Cached:     true,
		}, nil
	}

	result, err := s.engine.AnalyzeContent(req.Content, engine.ContentType(req.ContentType))
	if err != nil {
		return nil, err
	}

	analysesTotal.WithLabelValues(string(result.Severity), "false").Inc()

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.SetWithExpiration(ctx, cacheKey(hash), payload, s.cacheTTL); err != nil {
			logger.WithContext(ctx).Warn("failed to cache analysis result", zap.Error(err))
		}
	}

	s.recordHistory(ctx, hash, req.ContentType, result, time.Since(start))

	resp := &AnalyzeResponse{
		RiskScore:  result.RiskScore,
		Indicators: result.Indicators,
		Severity:   result.Severity,
	}

	if result.RiskScore >= s.alertThreshold {
		alert := &Alert{
			ID:             uuid.New(),
			ContentType:    req.ContentType,
			Content:        truncateRunes(req.Content, maxAlertContentRunes),
			RiskScore:      result.RiskScore,
			Severity:       result.Severity,
			Indicators:     result.Indicators,
			SourcePlatform: req.SourcePlatform,
			Status:         StatusActive,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.repo.CreateAlert(ctx, alert); err != nil {
			return nil, fmt.Errorf("failed to raise alert: %w", err)
		}
		resp.AlertID = &alert.ID

		logger.WithContext(ctx).Info("fraud alert raised",
			zap.String("alert_id", alert.ID.String()),
			zap.Float64("risk_score", alert.RiskScore),
			zap.String("severity", string(alert.Severity)),
		)
	}

	return resp, nil
}

// GetAlert retrieves a single alert
func (s *Service) GetAlert(ctx context.Context, alertID uuid.UUID) (*Alert, error) {
	return s.repo.GetAlertByID(ctx, alertID)
}

// ListRecentAlerts retrieves alerts newest first
func (s *Service) ListRecentAlerts(ctx context.Context, limit, offset int) ([]*Alert, int64, error) {
	return s.repo.ListRecentAlerts(ctx, limit, offset)
}

// ResolveAlert closes an alert as resolved or false positive
func (s *Service) ResolveAlert(ctx context.Context, alertID uuid.UUID, falsePositive bool) error {
	status := StatusResolved
	if falsePositive {
		status = StatusFalsePositive
	}
	return s.repo.UpdateAlertStatus(ctx, alertID, status, time.Now().UTC())
}

// GetDashboardStats aggregates counts for the dashboard
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.repo.GetDashboardStats(ctx)
}

// GetRiskDistribution counts alerts per severity tier
func (s *Service) GetRiskDistribution(ctx context.Context) (*RiskDistribution, error) {
	return s.repo.GetRiskDistribution(ctx)
}

// ActiveHighSeverityAlerts returns the active high and critical alerts used
// as cross-signal input for network analysis
func (s *Service) ActiveHighSeverityAlerts(ctx context.Context) ([]*Alert, error) {
	return s.repo.ListActiveHighSeverityAlerts(ctx)
}

func (s *Service) cachedResult(ctx context.Context, hash string) (*engine.AnalysisResult, bool) {
	payload, err := s.cache.GetString(ctx, cacheKey(hash))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext(ctx).Warn("analysis cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var result engine.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (s *Service) recordHistory(ctx context.Context, hash, contentType string, result *engine.AnalysisResult, elapsed time.Duration) {
	record := &AnalysisRecord{
		ID:               uuid.New(),
		ContentHash:      hash,
		ContentType:      contentType,
		RiskScore:        result.RiskScore,
		Result:           result,
		ProcessingTimeMs: float64(elapsed.Microseconds()) / 1000.0,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.CreateAnalysisRecord(ctx, record); err != nil {
		logger.WithContext(ctx).Warn("failed to record analysis history", zap.Error(err))
	}
}

func contentHash(contentType, content string) string {
	h := sha256.New()
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(hash string) string {
	return "analysis:" + hash
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
