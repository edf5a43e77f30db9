package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeScamMessageIsCritical(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	result, err := analyzer.Analyze("Guaranteed 300% returns in 30 days, send money now", ContentTypeText)
	require.NoError(t, err)

	assert.Contains(t, result.Indicators, "unrealistic_returns")
	assert.Contains(t, result.Indicators, "urgency_pressure")
	assert.GreaterOrEqual(t, result.RiskScore, 8.0)
	assert.Equal(t, SeverityCritical, result.Severity)
}

func TestAnalyzeBenignContentScoresZero(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	result, err := analyzer.Analyze("Quarterly portfolio review scheduled for next week", ContentTypeText)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.RiskScore)
	assert.Empty(t, result.Indicators)
	assert.Equal(t, SeverityLow, result.Severity)
}

func TestAnalyzeEmptyContentIsInvalidInput(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := analyzer.Analyze(content, ContentTypeText)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestAnalyzeUnsupportedContentTypeIsInvalidInput(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	_, err := analyzer.Analyze("some video clip", ContentType("video"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())
	content := "Act now! Guaranteed returns, WhatsApp group only, SEBI approved."

	first, err := analyzer.Analyze(content, ContentTypeText)
	require.NoError(t, err)
	second, err := analyzer.Analyze(content, ContentTypeText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeScoreIsClampedAtTen(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())
	content := "Guaranteed returns, act now, WhatsApp group only, SEBI approved, " +
		"pyramid referral bonus, insider trading, pre-IPO secret strategy, " +
		"99% success rate, ₹50 lakh profit, deepfake promo, call 9876543210"

	result, err := analyzer.Analyze(content, ContentTypeText)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.RiskScore)
	assert.Equal(t, SeverityCritical, result.Severity)
	assert.Greater(t, len(result.Indicators), 5)
}

func TestAnalyzeURLRunsURLRulesOnTopOfTextRules(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	result, err := analyzer.Analyze("bit.ly/quick-money-now?otp=1234", ContentTypeURL)
	require.NoError(t, err)

	assert.Contains(t, result.Indicators, "url_shortener")
	assert.Contains(t, result.Indicators, "suspicious_domain")
	assert.Contains(t, result.Indicators, "credential_bait")
	assert.Contains(t, result.Indicators, "missing_scheme")

	// The same rules must not fire for plain text.
	textResult, err := analyzer.Analyze("bit.ly/quick-money-now?otp=1234", ContentTypeText)
	require.NoError(t, err)
	assert.NotContains(t, textResult.Indicators, "url_shortener")
}

func TestAnalyzeFlagsAllCapsContent(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	result, err := analyzer.Analyze("HUGE PROFITS WAITING FOR YOU TODAY MY FRIEND", ContentTypeText)
	require.NoError(t, err)

	require.NotEmpty(t, result.Indicators)
	assert.Contains(t, result.Indicators, "excessive_caps")

	// The same words in mixed case carry no indicator at all.
	calm, err := analyzer.Analyze("Huge profits waiting for you today my friend", ContentTypeText)
	require.NoError(t, err)
	assert.NotContains(t, calm.Indicators, "excessive_caps")
}

func TestAnalyzeDoesNotMutateCallerContent(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())
	original := "  GUARANTEED Returns\t now  "

	_, err := analyzer.Analyze(original, ContentTypeText)
	require.NoError(t, err)
	assert.Equal(t, "  GUARANTEED Returns\t now  ", original)
}

func TestSeverityBoundariesAreExact(t *testing.T) {
	assert.Equal(t, SeverityLow, SeverityFromScore(0))
	assert.Equal(t, SeverityLow, SeverityFromScore(3.999))
	assert.Equal(t, SeverityMedium, SeverityFromScore(4.0))
	assert.Equal(t, SeverityMedium, SeverityFromScore(6.999))
	assert.Equal(t, SeverityHigh, SeverityFromScore(7.0))
	assert.Equal(t, SeverityHigh, SeverityFromScore(7.999))
	assert.Equal(t, SeverityCritical, SeverityFromScore(8.0))
	assert.Equal(t, SeverityCritical, SeverityFromScore(10.0))
}

func TestSeverityNeverDisagreesWithScore(t *testing.T) {
	analyzer := NewContentAnalyzer(DefaultLibrary())

	for _, content := range []string{
		"Guaranteed 300% returns in 30 days, send money now",
		"join our telegram group for stock tips",
		"hurry, limited spots in our pre-IPO offer",
		"regular market commentary with no claims",
	} {
		result, err := analyzer.Analyze(content, ContentTypeText)
		require.NoError(t, err)
		assert.Equal(t, SeverityFromScore(result.RiskScore), result.Severity, content)
		assert.GreaterOrEqual(t, result.RiskScore, 0.0)
		assert.LessOrEqual(t, result.RiskScore, 10.0)
	}
}
