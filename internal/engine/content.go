package engine

import (
	"fmt"
	"strings"
)

// AnalysisResult is the outcome of a single content analysis. It is created
// fresh per call and never mutated by the engine after return.
type AnalysisResult struct {
	RiskScore  float64  `json:"risk_score"`
	Indicators []string `json:"indicators"`
	Severity   Severity `json:"severity"`
}

// ContentAnalyzer aggregates indicator library matches into a risk score and
// severity tier. It is stateless beyond the read-only rule table and safe for
// concurrent use.
type ContentAnalyzer struct {
	library *Library
}

// NewContentAnalyzer creates a content analyzer over the given rule library.
func NewContentAnalyzer(library *Library) *ContentAnalyzer {
	return &ContentAnalyzer{library: library}
}

// Normalize case-folds content and collapses runs of whitespace. The caller's
// original string is left untouched for storage and display.
func Normalize(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

// Analyze runs the indicator library over the content and aggregates the
// matched weights. Zero matches is a valid result (score 0, severity low);
// only content that is empty after normalization is an error.
func (a *ContentAnalyzer) Analyze(content string, contentType ContentType) (*AnalysisResult, error) {
	switch contentType {
	case ContentTypeText, ContentTypeURL:
	default:
		return nil, fmt.Errorf("unsupported content type %q: %w", contentType, ErrInvalidInput)
	}

	normalized := Normalize(content)
	if normalized == "" {
		return nil, fmt.Errorf("content is empty after normalization: %w", ErrInvalidInput)
	}

	matches := a.library.Evaluate(normalized, content, contentType)

	score := 0.0
	indicators := make([]string, 0, len(matches))
	for _, match := range matches {
		score += match.Weight
		indicators = append(indicators, match.Name)
	}
	if score > 10 {
		score = 10
	}

	return &AnalysisResult{
		RiskScore:  score,
		Indicators: indicators,
		Severity:   SeverityFromScore(score),
	}, nil
}
