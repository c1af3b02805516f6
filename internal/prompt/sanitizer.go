package prompt

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Sanitizer rewrites domain terms that are statistically prone to tripping
// third-party content-safety filters (lethality, toxicity, crop failure) into
// neutral agronomic phrasing. It is a best-effort mitigation applied to the
// prompt side only; it does not guarantee generation will not be refused, and
// it is never applied to the contexts returned to the caller.
type Sanitizer struct {
	pattern      *regexp.Regexp
	replacements map[string]string
}

// DefaultTriggerTerms is the standard substitution table, loaded once at
// startup and passed in explicitly so tests can supply alternates.
func DefaultTriggerTerms() map[string]string {
	return map[string]string{
		"kill":       "control",
		"kills":      "controls",
		"killing":    "controlling",
		"killed":     "controlled",
		"deadly":     "severe",
		"lethal":     "severe",
		"fatal":      "severe",
		"poison":     "pesticide",
		"poisonous":  "harmful",
		"poisoning":  "contamination",
		"toxic":      "harmful",
		"toxicity":   "harmfulness",
		"death":      "loss",
		"dead":       "failed",
		"die":        "fail",
		"dies":       "fails",
		"died":       "failed",
		"dying":      "failing",
		"destroy":    "suppress",
		"destroys":   "suppresses",
		"destroyed":  "suppressed",
		"eradicate":  "remove",
		"eradicated": "removed",
	}
}

// NewSanitizer compiles a case-insensitive, word-boundary-respecting matcher
// over the given term mapping. Keys must be single words.
func NewSanitizer(mapping map[string]string) *Sanitizer {
	terms := make([]string, 0, len(mapping))
	replacements := make(map[string]string, len(mapping))
	for term, neutral := range mapping {
		terms = append(terms, regexp.QuoteMeta(term))
		replacements[strings.ToLower(term)] = neutral
	}
	// Longest-first so "poisonous" never matches as "poison" + suffix.
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(terms, "|") + `)\b`)
	return &Sanitizer{pattern: pattern, replacements: replacements}
}

// Apply substitutes every mapped term in text, preserving leading
// capitalization of the matched word.
func (s *Sanitizer) Apply(text string) string {
	return s.pattern.ReplaceAllStringFunc(text, func(match string) string {
		neutral, ok := s.replacements[strings.ToLower(match)]
		if !ok {
			return match
		}
		if len(match) > 0 && unicode.IsUpper(rune(match[0])) {
			runes := []rune(neutral)
			if len(runes) > 0 {
				runes[0] = unicode.ToUpper(runes[0])
			}
			return string(runes)
		}
		return neutral
	})
}
