package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ContentType selects which rule subset applies on top of the always-on text
// indicators.
type ContentType string

const (
	ContentTypeText ContentType = "text"
	ContentTypeURL  ContentType = "url"
)

// Rule is a single named, weighted detection rule. A rule either contributes
// its full weight once or not at all, no matter how often its pattern occurs
// in the content.
type Rule struct {
	Name   string
	Weight float64
	// ContentType restricts the rule to one content type. Empty means the
	// rule runs for every type.
	ContentType ContentType
	// Match is a predicate over normalized content (lower-cased, whitespace
	// collapsed). It must be pure.
	Match func(normalized string) bool
	// MatchRaw is a predicate over the content as submitted, for signals the
	// case-fold destroys (capitalization ratio and the like). Exactly one of
	// Match and MatchRaw must be set.
	MatchRaw func(raw string) bool
}

// Library is an immutable, ordered registry of detection rules. Evaluation
// order is the registration order, never the position of matches in the
// content.
type Library struct {
	rules []Rule
}

// IndicatorMatch is a single matched rule.
type IndicatorMatch struct {
	Name   string
	Weight float64
}

// NewLibrary builds a rule library, validating every rule. An empty or
// malformed rule set is a startup failure, not a per-call one.
func NewLibrary(rules []Rule) (*Library, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("indicator rule set is empty: %w", ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule %d has no name: %w", i, ErrConfiguration)
		}
		if _, dup := seen[rule.Name]; dup {
			return nil, fmt.Errorf("duplicate rule %q: %w", rule.Name, ErrConfiguration)
		}
		seen[rule.Name] = struct{}{}
		if rule.Weight < 0 || rule.Weight > 10 {
			return nil, fmt.Errorf("rule %q weight %.2f outside [0,10]: %w", rule.Name, rule.Weight, ErrConfiguration)
		}
		if rule.Match == nil && rule.MatchRaw == nil {
			return nil, fmt.Errorf("rule %q has no matcher: %w", rule.Name, ErrConfiguration)
		}
		if rule.Match != nil && rule.MatchRaw != nil {
			return nil, fmt.Errorf("rule %q has both matchers: %w", rule.Name, ErrConfiguration)
		}
	}

	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Library{rules: owned}, nil
}

// Evaluate runs every applicable rule and returns the matches in
// rule-registration order. Each rule appears at most once. Rules see either
// the normalized content or the raw submission, per their matcher.
func (l *Library) Evaluate(normalized, raw string, contentType ContentType) []IndicatorMatch {
	matches := make([]IndicatorMatch, 0)
	for _, rule := range l.rules {
		if rule.ContentType != "" && rule.ContentType != contentType {
			continue
		}
		matched := false
		if rule.Match != nil {
			matched = rule.Match(normalized)
		} else {
			matched = rule.MatchRaw(raw)
		}
		if matched {
			matches = append(matches, IndicatorMatch{Name: rule.Name, Weight: rule.Weight})
		}
	}
	return matches
}

// Len reports the number of registered rules.
func (l *Library) Len() int {
	return len(l.rules)
}

var (
	percentReturnPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(?:returns?|profits?|gains?)`)
	successRatePattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*success`)
	largeAmountPattern   = regexp.MustCompile(`₹\s*\d[\d,]*\s*(?:lakh|crore)`)
	contactNumberPattern = regexp.MustCompile(`\b\d{10}\b|wa\.me/|t\.me/|telegram\s*@\w+`)
	longDigitRunPattern  = regexp.MustCompile(`\d{8,}`)
)

func containsAny(s string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// excessiveCaps reports whether more than half the letters are upper case.
// Very short content is exempt, an all-caps ticker symbol is not shouting.
func excessiveCaps(raw string) bool {
	if len([]rune(raw)) <= 10 {
		return false
	}
	letters, caps := 0, 0
	for _, r := range raw {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				caps++
			}
		}
	}
	return letters > 0 && float64(caps)/float64(letters) > 0.5
}

// DefaultLibrary returns the built-in investment-fraud rule set. Rule order
// here is the detection order reported to callers.
func DefaultLibrary() *Library {
	lib, err := NewLibrary([]Rule{
		{
			Name:   "unrealistic_returns",
			Weight: 4.5,
			Match: func(s string) bool {
				for _, m := range percentReturnPattern.FindAllStringSubmatch(s, -1) {
					if rate, err := strconv.ParseFloat(m[1], 64); err == nil && rate >= 30 {
						return true
					}
				}
				return false
			},
		},
		{
			Name:   "guaranteed_returns",
			Weight: 3.5,
			Match: func(s string) bool {
				return containsAny(s,
					"guaranteed returns", "assured returns", "risk-free", "risk free",
					"double your money", "100% guaranteed", "money back guarantee",
					"never fail", "foolproof",
					// hindi
					"गारंटीशुदा रिटर्न", "जोखिम मुक्त निवेश", "पैसा दोगुना",
					// tamil
					"உத்தரவாதமான வருமானம்", "ஆபத்து இல்லாத முதலீடு", "பணம் இரட்டிப்பாக்கம்",
				)
			},
		},
		{
			Name:   "urgency_pressure",
			Weight: 3.5,
			Match: func(s string) bool {
				return containsAny(s,
					"act now", "act fast", "hurry", "limited time", "limited spots",
					"expires soon", "expires today", "closing today", "deadline",
					"last chance", "final warning", "one-time offer", "send money now",
					"only 24 hours", "only 48 hours",
					// hindi
					"सीमित समय", "तुरंत कार्य करें",
					// tamil
					"வரையறுக்கப்பட்ட நேரம்", "உடனே செயல்படுங்கள்",
				)
			},
		},
		{
			Name:   "contact_pressure",
			Weight: 3.0,
			Match: func(s string) bool {
				return containsAny(s,
					"whatsapp only", "whatsapp group", "telegram group", "private group",
					"delete after reading", "dont share", "don't share",
					"call immediately", "contact now", "download our app",
					// hindi
					"व्हाट्सएप ग्रुप",
					// tamil
					"வாட்ஸ்அப் குழு",
				)
			},
		},
		{
			Name:   "fake_endorsement",
			Weight: 3.0,
			Match: func(s string) bool {
				return containsAny(s,
					"sebi approved", "rbi certified", "government backed",
					"tax free returns", "celebrity endorsed", "bollywood",
					// hindi
					"सेबी अप्रूवड", "आरबीआई सर्टिफाइड", "सरकारी समर्थन",
				)
			},
		},
		{
			Name:   "pyramid_structure",
			Weight: 2.5,
			Match: func(s string) bool {
				return containsAny(s,
					"pyramid", "multi-level marketing", "downline", "referral bonus",
					"matrix scheme",
				)
			},
		},
		{
			Name:   "market_manipulation",
			Weight: 3.0,
			Match: func(s string) bool {
				return containsAny(s,
					"pump and dump", "wash trading", "market manipulation",
					"coordinated buying", "insider trading", "insider information",
					// hindi
					"अंदरूनी जानकारी",
					// tamil
					"உள்ளக தகவல்",
				)
			},
		},
		{
			Name:   "exclusive_opportunity",
			Weight: 2.0,
			Match: func(s string) bool {
				return containsAny(s,
					"exclusive opportunity", "secret strategy", "limited time offer",
					"pre-ipo", "once in a lifetime",
					// hindi
					"विशेष अवसर", "गुप्त रणनीति",
					// tamil
					"சிறப்பு வாய்ப்பு", "இரகசிய உத்தி",
				)
			},
		},
		{
			Name:   "synthetic_media",
			Weight: 2.0,
			Match: func(s string) bool {
				return containsAny(s, "deepfake", "ai generated", "ai-generated", "synthetic media")
			},
		},
		{
			Name:   "unrealistic_success_rate",
			Weight: 3.0,
			Match: func(s string) bool {
				for _, m := range successRatePattern.FindAllStringSubmatch(s, -1) {
					if rate, err := strconv.ParseFloat(m[1], 64); err == nil && rate >= 90 {
						return true
					}
				}
				return false
			},
		},
		{
			Name:   "large_amount",
			Weight: 2.0,
			Match:  largeAmountPattern.MatchString,
		},
		{
			Name:   "direct_contact_number",
			Weight: 1.5,
			Match:  contactNumberPattern.MatchString,
		},
		{
			// Shouting. Needs the raw content, normalization folds case.
			Name:        "excessive_caps",
			Weight:      1.0,
			ContentType: ContentTypeText,
			MatchRaw:    excessiveCaps,
		},
		{
			Name:        "url_shortener",
			Weight:      2.5,
			ContentType: ContentTypeURL,
			Match: func(s string) bool {
				return containsAny(s, "bit.ly", "tinyurl.com", "goo.gl", "ow.ly", "is.gd", "t.co/", "short.link")
			},
		},
		{
			Name:        "suspicious_domain",
			Weight:      3.0,
			ContentType: ContentTypeURL,
			Match: func(s string) bool {
				return containsAny(s,
					"invest-now", "quick-money", "easy-profit", "get-rich",
					"secure-login", "verify-account", "update-details", ".tk",
				)
			},
		},
		{
			Name:        "credential_bait",
			Weight:      2.5,
			ContentType: ContentTypeURL,
			Match: func(s string) bool {
				return containsAny(s, "password=", "pin=", "otp=", "account_no=", "user_id=")
			},
		},
		{
			Name:        "missing_scheme",
			Weight:      1.5,
			ContentType: ContentTypeURL,
			Match: func(s string) bool {
				return !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://")
			},
		},
		{
			Name:        "obfuscated_url",
			Weight:      1.5,
			ContentType: ContentTypeURL,
			Match: func(s string) bool {
				return longDigitRunPattern.MatchString(s) || strings.Count(s, "-") > 3
			},
		},
	})
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return lib
}
