package advisors

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/logger"
)

// Service implements advisor verification and directory queries
type Service struct {
	engine *engine.Engine
	repo   AdvisorRepository
}

// NewService creates a new advisors service
func NewService(eng *engine.Engine, repo AdvisorRepository) *Service {
	return &Service{engine: eng, repo: repo}
}

// Verify resolves an advisor identity through the engine and attaches the
// full directory record when the verdict points at one
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	result, err := s.engine.VerifyAdvisor(ctx, req.LicenseNumber, req.Name)
	if err != nil {
		return nil, err
	}

	resp := &VerifyResponse{
		Status:           result.Status,
		Confidence:       result.Confidence,
		MalformedLicense: result.MalformedLicense,
	}

	if result.Matched != nil {
		advisor, err := s.repo.GetByLicense(ctx, result.Matched.LicenseNumber)
		if err != nil {
			// The verdict stands even if the directory read fails.
			logger.WithContext(ctx).Warn("failed to load matched advisor",
				zap.String("license_number", result.Matched.LicenseNumber),
				zap.Error(err),
			)
		} else {
			resp.Advisor = advisor
		}
	}

	logger.WithContext(ctx).Info("advisor verification",
		zap.String("status", string(resp.Status)),
		zap.Float64("confidence", resp.Confidence),
	)

	return resp, nil
}

// GetAdvisor retrieves a directory entry by license number
func (s *Service) GetAdvisor(ctx context.Context, licenseNumber string) (*Advisor, error) {
	return s.repo.GetByLicense(ctx, licenseNumber)
}

// ListAdvisors retrieves directory entries
func (s *Service) ListAdvisors(ctx context.Context, limit, offset int) ([]*Advisor, int64, error) {
	return s.repo.ListAdvisors(ctx, limit, offset)
}

// GetDirectoryStats counts directory entries by status
func (s *Service) GetDirectoryStats(ctx context.Context) (*DirectoryStats, error) {
	stats, err := s.repo.GetDirectoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get directory stats: %w", err)
	}
	return stats, nil
}
