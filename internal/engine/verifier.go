package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// VerificationStatus is the outcome class of an advisor verification.
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "verified"
	StatusUnverified VerificationStatus = "unverified"
	StatusMismatch   VerificationStatus = "mismatch"
	StatusNotFound   VerificationStatus = "not_found"
)

// AdvisorRecord is a registry entry for a registered advisor.
type AdvisorRecord struct {
	LicenseNumber string `json:"license_number"`
	Name          string `json:"registered_name"`
}

// AdvisorRegistry is the external, pluggable directory of registered
// advisors. The engine treats it as read-only.
type AdvisorRegistry interface {
	// LookupByLicense returns the record registered under the normalized
	// (upper-cased, trimmed) license number, or ErrNotFound.
	LookupByLicense(ctx context.Context, licenseNumber string) (*AdvisorRecord, error)
	// SearchByName returns candidate records whose registered name loosely
	// matches the query. An empty slice is a valid result.
	SearchByName(ctx context.Context, name string) ([]*AdvisorRecord, error)
}

// VerificationResult is the outcome of a single verification call.
type VerificationResult struct {
	Status     VerificationStatus `json:"status"`
	Confidence float64            `json:"confidence"`
	Matched    *AdvisorRecord     `json:"matched_record,omitempty"`
	// MalformedLicense flags a supplied license number that does not have the
	// registration shape. Only set when no license-backed match was found; a
	// made-up license on top of an unknown advisor is its own fraud signal.
	MalformedLicense bool `json:"malformed_license,omitempty"`
}

// nameMatchThreshold is the minimum token-overlap similarity for two names to
// be considered the same person.
const nameMatchThreshold = 0.5

// Verifier checks advisor identities against a registry. A license number is
// authoritative; a name alone is weak evidence, and confidence reflects that
// asymmetry.
type Verifier struct {
	registry AdvisorRegistry
}

// NewVerifier creates a verifier over the given registry.
func NewVerifier(registry AdvisorRegistry) (*Verifier, error) {
	if registry == nil {
		return nil, fmt.Errorf("advisor registry is nil: %w", ErrConfiguration)
	}
	return &Verifier{registry: registry}, nil
}

// NormalizeLicense normalizes a license identifier for exact lookup.
func NormalizeLicense(licenseNumber string) string {
	return strings.ToUpper(strings.TrimSpace(licenseNumber))
}

// licensePattern is the SEBI registration shape, INA followed by nine digits.
var licensePattern = regexp.MustCompile(`^INA\d{9}$`)

// ValidLicenseFormat reports whether a license number has the registration
// shape after normalization.
func ValidLicenseFormat(licenseNumber string) bool {
	return licensePattern.MatchString(NormalizeLicense(licenseNumber))
}

// Verify resolves an advisor by license number and/or name. At least one of
// the two must be non-empty.
func (v *Verifier) Verify(ctx context.Context, licenseNumber, name string) (*VerificationResult, error) {
	license := NormalizeLicense(licenseNumber)
	name = strings.TrimSpace(name)

	if license == "" && name == "" {
		return nil, fmt.Errorf("license number and name both empty: %w", ErrInvalidInput)
	}

	malformed := license != "" && !licensePattern.MatchString(license)

	if license != "" {
		record, err := v.registry.LookupByLicense(ctx, license)
		switch {
		case err == nil:
			return v.crossCheck(record, name), nil
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("license lookup: %w", err)
		}
		// License unknown: fall back to name-only search when possible.
	}

	if name == "" {
		return &VerificationResult{Status: StatusNotFound, Confidence: 0, MalformedLicense: malformed}, nil
	}

	result, err := v.searchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	result.MalformedLicense = malformed
	return result, nil
}

// crossCheck compares the supplied name against a license-backed record.
func (v *Verifier) crossCheck(record *AdvisorRecord, name string) *VerificationResult {
	if name == "" {
		return &VerificationResult{Status: StatusVerified, Confidence: 1.0, Matched: record}
	}

	similarity := nameSimilarity(name, record.Name)
	if similarity >= nameMatchThreshold {
		return &VerificationResult{Status: StatusVerified, Confidence: similarity, Matched: record}
	}
	return &VerificationResult{Status: StatusMismatch, Confidence: similarity, Matched: record}
}

// searchByName performs the weak-evidence fallback. More near-match
// candidates mean more ambiguity and therefore lower confidence.
func (v *Verifier) searchByName(ctx context.Context, name string) (*VerificationResult, error) {
	candidates, err := v.registry.SearchByName(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("name search: %w", err)
	}

	var best *AdvisorRecord
	bestSimilarity := 0.0
	matched := 0
	for _, candidate := range candidates {
		similarity := nameSimilarity(name, candidate.Name)
		if similarity < nameMatchThreshold {
			continue
		}
		matched++
		if similarity > bestSimilarity ||
			(similarity == bestSimilarity && best != nil && candidate.LicenseNumber < best.LicenseNumber) {
			best = candidate
			bestSimilarity = similarity
		}
	}

	if matched == 0 {
		return &VerificationResult{Status: StatusNotFound, Confidence: 0}, nil
	}

	confidence := bestSimilarity / float64(matched)
	if confidence > 1 {
		confidence = 1
	}
	return &VerificationResult{Status: StatusUnverified, Confidence: confidence, Matched: best}, nil
}

// nameSimilarity is the Jaccard overlap of normalized name tokens.
func nameSimilarity(a, b string) float64 {
	tokensA := nameTokens(a)
	tokensB := nameTokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

func nameTokens(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(name)) {
		field = strings.Trim(field, ".,")
		if field != "" {
			tokens[field] = struct{}{}
		}
	}
	return tokens
}
