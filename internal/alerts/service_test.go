package alerts

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/investguard/investguard/internal/engine"
)

type mockAlertRepository struct {
	mock.Mock
}

func (m *mockAlertRepository) CreateAlert(ctx context.Context, alert *Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *mockAlertRepository) GetAlertByID(ctx context.Context, alertID uuid.UUID) (*Alert, error) {
	args := m.Called(ctx, alertID)
	alert, _ := args.Get(0).(*Alert)
	return alert, args.Error(1)
}

func (m *mockAlertRepository) ListRecentAlerts(ctx context.Context, limit, offset int) ([]*Alert, int64, error) {
	args := m.Called(ctx, limit, offset)
	alerts, _ := args.Get(0).([]*Alert)
	return alerts, int64(args.Int(1)), args.Error(2)
}

func (m *mockAlertRepository) UpdateAlertStatus(ctx context.Context, alertID uuid.UUID, status string, resolvedAt time.Time) error {
	args := m.Called(ctx, alertID, status, resolvedAt)
	return args.Error(0)
}

func (m *mockAlertRepository) CreateAnalysisRecord(ctx context.Context, record *AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockAlertRepository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*DashboardStats)
	return stats, args.Error(1)
}

func (m *mockAlertRepository) GetRiskDistribution(ctx context.Context) (*RiskDistribution, error) {
	args := m.Called(ctx)
	dist, _ := args.Get(0).(*RiskDistribution)
	return dist, args.Error(1)
}

func (m *mockAlertRepository) ListActiveHighSeverityAlerts(ctx context.Context) ([]*Alert, error) {
	args := m.Called(ctx)
	alerts, _ := args.Get(0).([]*Alert)
	return alerts, args.Error(1)
}

// memoryCache is an in-process AnalysisCache for tests
type memoryCache struct {
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) GetString(_ context.Context, key string) (string, error) {
	value, ok := c.entries[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *memoryCache) SetWithExpiration(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.entries[key] = string(v)
	case string:
		c.entries[key] = v
	}
	return nil
}

type emptyRegistry struct{}

func (emptyRegistry) LookupByLicense(_ context.Context, license string) (*engine.AdvisorRecord, error) {
	return nil, engine.ErrNotFound
}

func (emptyRegistry) SearchByName(_ context.Context, _ string) ([]*engine.AdvisorRecord, error) {
	return nil, nil
}

func newTestService(repo AlertRepository, cache AnalysisCache) *Service {
	eng, err := engine.New(emptyRegistry{})
	if err != nil {
		panic(err)
	}
	return NewService(eng, repo, cache, time.Hour, 5.0)
}

func TestAnalyzeHighRiskContentRaisesAlert(t *testing.T) {
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateAlert", mock.Anything, mock.MatchedBy(func(alert *Alert) bool {
		return alert.Status == StatusActive && alert.Severity == engine.SeverityCritical
	})).Return(nil)

	service := newTestService(repo, newMemoryCache())

	resp, err := service.Analyze(context.Background(), &AnalyzeRequest{
		Content:        "Guaranteed 300% returns in 30 days, send money now",
		ContentType:    "text",
		SourcePlatform: "telegram",
	})

	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.GreaterOrEqual(t, resp.RiskScore, 5.0)
	require.NotNil(t, resp.AlertID)
	repo.AssertExpectations(t)
}

func TestAnalyzeBenignContentRaisesNoAlert(t *testing.T) {
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, newMemoryCache())

	resp, err := service.Analyze(context.Background(), &AnalyzeRequest{
		Content:     "Quarterly review of the diversified portfolio",
		ContentType: "text",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.AlertID)
	repo.AssertNotCalled(t, "CreateAlert", mock.Anything, mock.Anything)
}

func TestAnalyzeSecondRunHitsCache(t *testing.T) {
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, newMemoryCache())
	req := &AnalyzeRequest{
		Content:     "Guaranteed 300% returns in 30 days, send money now",
		ContentType: "text",
	}

	first, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Indicators, second.Indicators)

	// Cached hits still land in the history log.
	repo.AssertNumberOfCalls(t, "CreateAnalysisRecord", 2)
}

func TestAnalyzeCountsCacheHitsInMetrics(t *testing.T) {
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateAlert", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, newMemoryCache())
	req := &AnalyzeRequest{
		Content:     "Guaranteed 300% returns in 30 days, send money now",
		ContentType: "text",
	}

	severity := string(engine.SeverityCritical)
	freshBefore := testutil.ToFloat64(analysesTotal.WithLabelValues(severity, "false"))
	cachedBefore := testutil.ToFloat64(analysesTotal.WithLabelValues(severity, "true"))

	_, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)
	_, err = service.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, freshBefore+1, testutil.ToFloat64(analysesTotal.WithLabelValues(severity, "false")))
	assert.Equal(t, cachedBefore+1, testutil.ToFloat64(analysesTotal.WithLabelValues(severity, "true")))
}

func TestAnalyzeCacheIsHashedPerContentType(t *testing.T) {
	cache := newMemoryCache()
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, cache)

	_, err := service.Analyze(context.Background(), &AnalyzeRequest{Content: "plain message", ContentType: "text"})
	require.NoError(t, err)

	for key := range cache.entries {
		assert.True(t, strings.HasPrefix(key, "analysis:"))
	}
	assert.Len(t, cache.entries, 1)
}

func TestAnalyzeRejectsInvalidContentType(t *testing.T) {
	service := newTestService(new(mockAlertRepository), newMemoryCache())

	_, err := service.Analyze(context.Background(), &AnalyzeRequest{Content: "x", ContentType: "video"})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestAnalyzeSurvivesCorruptCacheEntry(t *testing.T) {
	cache := newMemoryCache()
	repo := new(mockAlertRepository)
	repo.On("CreateAnalysisRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, cache)

	req := &AnalyzeRequest{Content: "ordinary update", ContentType: "text"}
	cache.entries[cacheKey(contentHash("text", "ordinary update"))] = "{not json"

	resp, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Cached)

	// The bad entry gets overwritten with a valid result.
	var result engine.AnalysisResult
	err = json.Unmarshal([]byte(cache.entries[cacheKey(contentHash("text", "ordinary update"))]), &result)
	assert.NoError(t, err)
}

func TestResolveAlertStatusMapping(t *testing.T) {
	repo := new(mockAlertRepository)
	alertID := uuid.New()
	repo.On("UpdateAlertStatus", mock.Anything, alertID, StatusResolved, mock.Anything).Return(nil).Once()
	repo.On("UpdateAlertStatus", mock.Anything, alertID, StatusFalsePositive, mock.Anything).Return(nil).Once()

	service := newTestService(repo, newMemoryCache())

	require.NoError(t, service.ResolveAlert(context.Background(), alertID, false))
	require.NoError(t, service.ResolveAlert(context.Background(), alertID, true))
	repo.AssertExpectations(t)
}

func TestContentHashIsStableAndTypeSensitive(t *testing.T) {
	assert.Equal(t, contentHash("text", "abc"), contentHash("text", "abc"))
	assert.NotEqual(t, contentHash("text", "abc"), contentHash("url", "abc"))
	assert.NotEqual(t, contentHash("text", "abc"), contentHash("text", "abd"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "abcde", truncateRunes("abcdef", 5))
	assert.Equal(t, "₹₹₹", truncateRunes("₹₹₹₹₹", 3))
}
