package advisors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/investguard/investguard/internal/engine"
)

type mockAdvisorRepository struct {
	mock.Mock
}

func (m *mockAdvisorRepository) LookupByLicense(ctx context.Context, licenseNumber string) (*engine.AdvisorRecord, error) {
	args := m.Called(ctx, licenseNumber)
	record, _ := args.Get(0).(*engine.AdvisorRecord)
	return record, args.Error(1)
}

func (m *mockAdvisorRepository) SearchByName(ctx context.Context, name string) ([]*engine.AdvisorRecord, error) {
	args := m.Called(ctx, name)
	records, _ := args.Get(0).([]*engine.AdvisorRecord)
	return records, args.Error(1)
}

func (m *mockAdvisorRepository) GetByLicense(ctx context.Context, licenseNumber string) (*Advisor, error) {
	args := m.Called(ctx, licenseNumber)
	advisor, _ := args.Get(0).(*Advisor)
	return advisor, args.Error(1)
}

func (m *mockAdvisorRepository) ListAdvisors(ctx context.Context, limit, offset int) ([]*Advisor, int64, error) {
	args := m.Called(ctx, limit, offset)
	advisors, _ := args.Get(0).([]*Advisor)
	return advisors, int64(args.Int(1)), args.Error(2)
}

func (m *mockAdvisorRepository) GetDirectoryStats(ctx context.Context) (*DirectoryStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*DirectoryStats)
	return stats, args.Error(1)
}

func newTestService(t *testing.T, repo AdvisorRepository) *Service {
	t.Helper()
	eng, err := engine.New(repo)
	require.NoError(t, err)
	return NewService(eng, repo)
}

func TestVerifyKnownLicenseAttachesDirectoryRecord(t *testing.T) {
	repo := new(mockAdvisorRepository)
	repo.On("LookupByLicense", mock.Anything, "INA000012345").Return(
		&engine.AdvisorRecord{LicenseNumber: "INA000012345", Name: "Rajesh Kumar Sharma"}, nil)
	repo.On("GetByLicense", mock.Anything, "INA000012345").Return(
		&Advisor{LicenseNumber: "INA000012345", Name: "Rajesh Kumar Sharma", Status: StatusActive, Firm: "Wealth Bridge Advisors"}, nil)

	service := newTestService(t, repo)

	resp, err := service.Verify(context.Background(), &VerifyRequest{LicenseNumber: "ina000012345"})
	require.NoError(t, err)

	assert.Equal(t, engine.StatusVerified, resp.Status)
	assert.Equal(t, 1.0, resp.Confidence)
	require.NotNil(t, resp.Advisor)
	assert.Equal(t, "Wealth Bridge Advisors", resp.Advisor.Firm)
}

func TestVerifyVerdictSurvivesDirectoryReadFailure(t *testing.T) {
	repo := new(mockAdvisorRepository)
	repo.On("LookupByLicense", mock.Anything, "INA000012345").Return(
		&engine.AdvisorRecord{LicenseNumber: "INA000012345", Name: "Rajesh Kumar Sharma"}, nil)
	repo.On("GetByLicense", mock.Anything, "INA000012345").Return(nil, engine.ErrNotFound)

	service := newTestService(t, repo)

	resp, err := service.Verify(context.Background(), &VerifyRequest{LicenseNumber: "INA000012345"})
	require.NoError(t, err)

	assert.Equal(t, engine.StatusVerified, resp.Status)
	assert.Nil(t, resp.Advisor)
}

func TestVerifyUnknownLicenseFallsBackToName(t *testing.T) {
	repo := new(mockAdvisorRepository)
	repo.On("LookupByLicense", mock.Anything, "INA000099999").Return(nil, engine.ErrNotFound)
	repo.On("SearchByName", mock.Anything, "Priya Venkatesan").Return([]*engine.AdvisorRecord{
		{LicenseNumber: "INA000023456", Name: "Priya Venkatesan"},
	}, nil)
	repo.On("GetByLicense", mock.Anything, "INA000023456").Return(
		&Advisor{LicenseNumber: "INA000023456", Name: "Priya Venkatesan", Status: StatusActive}, nil)

	service := newTestService(t, repo)

	resp, err := service.Verify(context.Background(), &VerifyRequest{
		LicenseNumber: "INA000099999",
		Name:          "Priya Venkatesan",
	})
	require.NoError(t, err)

	assert.Equal(t, engine.StatusUnverified, resp.Status)
	require.NotNil(t, resp.Advisor)
	assert.Equal(t, "INA000023456", resp.Advisor.LicenseNumber)
}

func TestVerifyMalformedLicenseFlowsIntoResponse(t *testing.T) {
	repo := new(mockAdvisorRepository)
	repo.On("LookupByLicense", mock.Anything, "INA-FAKE").Return(nil, engine.ErrNotFound)

	service := newTestService(t, repo)

	resp, err := service.Verify(context.Background(), &VerifyRequest{LicenseNumber: "INA-fake"})
	require.NoError(t, err)

	assert.Equal(t, engine.StatusNotFound, resp.Status)
	assert.True(t, resp.MalformedLicense)
}

func TestVerifyEmptyRequestIsInvalid(t *testing.T) {
	service := newTestService(t, new(mockAdvisorRepository))

	_, err := service.Verify(context.Background(), &VerifyRequest{})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestGetDirectoryStats(t *testing.T) {
	repo := new(mockAdvisorRepository)
	repo.On("GetDirectoryStats", mock.Anything).Return(&DirectoryStats{
		Total: 8, Active: 6, Suspended: 1, Revoked: 1,
	}, nil)

	service := newTestService(t, repo)

	stats, err := service.GetDirectoryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.Total)
	assert.Equal(t, int64(6), stats.Active)
}
