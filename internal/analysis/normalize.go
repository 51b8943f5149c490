// Package analysis implements the aggregation core of the job-market
// analyzer: token normalization, synonym canonicalization, document-frequency
// counting, demand ranking, and resume gap analysis.
package analysis

import "strings"

// tokenCutset is the punctuation stripped from token edges. Internal
// punctuation survives so tokens like "ci/cd", "c++" and "scikit-learn"
// stay intact.
const tokenCutset = " \t\r\n.,;:!?-_/\\()[]{}\"'"

// Normalize lowercases a raw token, collapses internal whitespace runs to
// single spaces, and trims surrounding whitespace and punctuation. A token
// that normalizes to the empty string carries no signal and is dropped by
// every consumer.
func Normalize(token string) string {
	token = strings.ToLower(token)
	token = strings.Join(strings.Fields(token), " ")
	return strings.Trim(token, tokenCutset)
}

// NormalizeAll normalizes every token, drops empties, and deduplicates
// preserving first-seen order
func NormalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		normalized := Normalize(token)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
