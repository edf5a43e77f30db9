package reports

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/investguard/investguard/internal/engine"
)

type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) CreateReport(ctx context.Context, report *Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportRepository) GetReportByID(ctx context.Context, reportID uuid.UUID) (*Report, error) {
	args := m.Called(ctx, reportID)
	report, _ := args.Get(0).(*Report)
	return report, args.Error(1)
}

func (m *mockReportRepository) ListRecentReports(ctx context.Context, limit, offset int) ([]*Report, int64, error) {
	args := m.Called(ctx, limit, offset)
	reports, _ := args.Get(0).([]*Report)
	return reports, int64(args.Int(1)), args.Error(2)
}

func (m *mockReportRepository) UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status string) error {
	args := m.Called(ctx, reportID, status)
	return args.Error(0)
}

func validSubmission() *SubmitReportRequest {
	return &SubmitReportRequest{
		ReporterEmail: "victim@example.com",
		ContentURL:    "https://t.me/quickrichgroup",
		Description:   "Promised 200% returns in a month, took money and disappeared",
		Platform:      "telegram",
		FraudType:     "investment_scam",
		AmountLost:    50000,
	}
}

func TestSubmitStoresPendingReport(t *testing.T) {
	repo := new(mockReportRepository)
	repo.On("CreateReport", mock.Anything, mock.MatchedBy(func(report *Report) bool {
		return report.Status == StatusPending && report.ID != uuid.Nil
	})).Return(nil)

	service := NewService(repo)

	report, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, report.Status)
	repo.AssertExpectations(t)
}

func TestSubmitRejectsInvalidEmail(t *testing.T) {
	service := NewService(new(mockReportRepository))

	req := validSubmission()
	req.ReporterEmail = "not-an-email"

	_, err := service.Submit(context.Background(), req)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestSubmitRejectsShortDescription(t *testing.T) {
	service := NewService(new(mockReportRepository))

	req := validSubmission()
	req.Description = "scam"

	_, err := service.Submit(context.Background(), req)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestSubmitRejectsUnknownFraudType(t *testing.T) {
	service := NewService(new(mockReportRepository))

	req := validSubmission()
	req.FraudType = "ufo_abduction"

	_, err := service.Submit(context.Background(), req)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestUpdateStatusFollowsTriageFlow(t *testing.T) {
	repo := new(mockReportRepository)
	reportID := uuid.New()
	repo.On("GetReportByID", mock.Anything, reportID).Return(&Report{ID: reportID, Status: StatusPending}, nil)
	repo.On("UpdateReportStatus", mock.Anything, reportID, StatusInvestigating).Return(nil)

	service := NewService(repo)

	report, err := service.UpdateStatus(context.Background(), reportID, &UpdateStatusRequest{Status: StatusInvestigating})
	require.NoError(t, err)
	assert.Equal(t, StatusInvestigating, report.Status)
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	repo := new(mockReportRepository)
	reportID := uuid.New()
	repo.On("GetReportByID", mock.Anything, reportID).Return(&Report{ID: reportID, Status: StatusPending}, nil)

	service := NewService(repo)

	_, err := service.UpdateStatus(context.Background(), reportID, &UpdateStatusRequest{Status: StatusConfirmed})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateReportStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectsLeavingTerminalState(t *testing.T) {
	repo := new(mockReportRepository)
	reportID := uuid.New()
	repo.On("GetReportByID", mock.Anything, reportID).Return(&Report{ID: reportID, Status: StatusConfirmed}, nil)

	service := NewService(repo)

	_, err := service.UpdateStatus(context.Background(), reportID, &UpdateStatusRequest{Status: StatusDismissed})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestUpdateStatusUnknownReport(t *testing.T) {
	repo := new(mockReportRepository)
	reportID := uuid.New()
	repo.On("GetReportByID", mock.Anything, reportID).Return(nil, engine.ErrNotFound)

	service := NewService(repo)

	_, err := service.UpdateStatus(context.Background(), reportID, &UpdateStatusRequest{Status: StatusInvestigating})
	assert.ErrorIs(t, err, engine.ErrNotFound)
}
