package engine

// Severity is a coarse classification tier derived from a numeric risk score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severity tier boundaries. These are the single source of truth: every
// component that re-derives a tier from a stored score must go through
// SeverityFromScore so the boundaries cannot drift.
const (
	mediumThreshold   = 4.0
	highThreshold     = 7.0
	criticalThreshold = 8.0
)

// SeverityFromScore maps a risk score to its severity tier.
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= criticalThreshold:
		return SeverityCritical
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
