package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLibraryRejectsEmptyRuleSet(t *testing.T) {
	_, err := NewLibrary(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewLibraryRejectsMalformedRules(t *testing.T) {
	match := func(string) bool { return false }

	cases := map[string][]Rule{
		"missing name":   {{Weight: 1, Match: match}},
		"missing match":  {{Name: "a", Weight: 1}},
		"both matchers":  {{Name: "a", Weight: 1, Match: match, MatchRaw: match}},
		"negative":       {{Name: "a", Weight: -1, Match: match}},
		"over ten":       {{Name: "a", Weight: 10.5, Match: match}},
		"duplicate name": {{Name: "a", Weight: 1, Match: match}, {Name: "a", Weight: 2, Match: match}},
	}

	for label, rules := range cases {
		_, err := NewLibrary(rules)
		assert.ErrorIs(t, err, ErrConfiguration, label)
	}
}

func TestEvaluateReportsRulesInRegistrationOrder(t *testing.T) {
	lib, err := NewLibrary([]Rule{
		{Name: "second_word", Weight: 1, Match: func(s string) bool { return strings.Contains(s, "beta") }},
		{Name: "first_word", Weight: 2, Match: func(s string) bool { return strings.Contains(s, "alpha") }},
	})
	require.NoError(t, err)

	// "alpha" appears before "beta" in the content, but evaluation order is
	// the library's, not the content's.
	matches := lib.Evaluate("alpha then beta", "alpha then beta", ContentTypeText)
	require.Len(t, matches, 2)
	assert.Equal(t, "second_word", matches[0].Name)
	assert.Equal(t, "first_word", matches[1].Name)
}

func TestEvaluateCountsEachRuleOnce(t *testing.T) {
	lib, err := NewLibrary([]Rule{
		{Name: "repeat", Weight: 3, Match: func(s string) bool { return strings.Contains(s, "spam") }},
	})
	require.NoError(t, err)

	matches := lib.Evaluate("spam spam spam spam", "spam spam spam spam", ContentTypeText)
	require.Len(t, matches, 1)
	assert.Equal(t, 3.0, matches[0].Weight)
}

func TestEvaluateFiltersByContentType(t *testing.T) {
	lib, err := NewLibrary([]Rule{
		{Name: "any", Weight: 1, Match: func(string) bool { return true }},
		{Name: "url_only", Weight: 1, ContentType: ContentTypeURL, Match: func(string) bool { return true }},
	})
	require.NoError(t, err)

	text := lib.Evaluate("x", "x", ContentTypeText)
	require.Len(t, text, 1)
	assert.Equal(t, "any", text[0].Name)

	url := lib.Evaluate("x", "x", ContentTypeURL)
	assert.Len(t, url, 2)
}

func TestDefaultLibraryIsWellFormed(t *testing.T) {
	lib := DefaultLibrary()
	assert.Greater(t, lib.Len(), 10)

	// Spot-check a few vocabulary entries.
	matched := lib.Evaluate("sebi approved scheme with referral bonus", "sebi approved scheme with referral bonus", ContentTypeText)
	names := make([]string, 0, len(matched))
	for _, m := range matched {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "fake_endorsement")
	assert.Contains(t, names, "pyramid_structure")
}

func TestEvaluateRawRulesSeeOriginalContent(t *testing.T) {
	lib, err := NewLibrary([]Rule{
		{Name: "shouting", Weight: 1, MatchRaw: func(raw string) bool {
			return strings.Contains(raw, "LOUD")
		}},
	})
	require.NoError(t, err)

	// Normalization folds case, so only the raw view can still match.
	matches := lib.Evaluate("loud noises", "LOUD NOISES", ContentTypeText)
	require.Len(t, matches, 1)
	assert.Equal(t, "shouting", matches[0].Name)

	assert.Empty(t, lib.Evaluate("loud noises", "loud noises", ContentTypeText))
}

func TestDefaultLibraryFlagsExcessiveCaps(t *testing.T) {
	lib := DefaultLibrary()

	content := "HUGE PROFITS WAITING FOR YOU TODAY MY FRIEND"
	matched := lib.Evaluate(Normalize(content), content, ContentTypeText)
	names := make([]string, 0, len(matched))
	for _, m := range matched {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "excessive_caps")

	// Mixed case, short all-caps tokens, and short content stay clean.
	for _, clean := range []string{
		"Quarterly NAV update for your SIP portfolio",
		"BUY NOW",
	} {
		matched := lib.Evaluate(Normalize(clean), clean, ContentTypeText)
		for _, m := range matched {
			assert.NotEqual(t, "excessive_caps", m.Name, clean)
		}
	}
}

func TestDefaultLibraryMatchesHindiAndTamilVocabulary(t *testing.T) {
	lib := DefaultLibrary()

	cases := map[string]string{
		"गारंटीशुदा रिटर्न हर महीने":      "guaranteed_returns",
		"सेबी अप्रूवड स्कीम में निवेश करें": "fake_endorsement",
		"தினமும் உத்தரவாதமான வருமானம்":    "guaranteed_returns",
		"உடனே செயல்படுங்கள் நண்பரே":       "urgency_pressure",
	}

	for content, want := range cases {
		matched := lib.Evaluate(Normalize(content), content, ContentTypeText)
		names := make([]string, 0, len(matched))
		for _, m := range matched {
			names = append(names, m.Name)
		}
		assert.Contains(t, names, want, content)
	}
}
