// Package filter decides whether a candidate title is relevant.
package filter

import "strings"

// Keywords is the set of phrases that mark a title as relevant. Phrases are
// stored lower-cased; matching is a plain substring test, so multi-word
// phrases match as written and unrelated substrings are accepted as a
// tradeoff for simplicity.
type Keywords []string

// New lower-cases and trims the given phrases, dropping empty ones.
func New(phrases []string) Keywords {
	keywords := make(Keywords, 0, len(phrases))
	for _, p := range phrases {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// Match reports whether any keyword occurs in the title, case-insensitively.
// The first match short-circuits; there is no scoring.
func (k Keywords) Match(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range k {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
