// Package collect - similarity.go implements the title matching used to keep
// search results close to the requested roles.
package collect

import (
	"regexp"
	"strings"
)

// similarityThreshold is the minimum token-overlap ratio for a found title to
// count as a match for a target title.
const similarityThreshold = 0.6

var letterRuns = regexp.MustCompile(`[a-zA-Z]+`)

// normalizeText lowercases a string and collapses whitespace runs.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// letterTokens returns the set of alphabetic runs in a string.
func letterTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range letterRuns.FindAllString(normalizeText(s), -1) {
		tokens[tok] = true
	}
	return tokens
}

// TitleSimilar reports whether a found job title is close enough to any of
// the target titles. Similarity is the share of a target title's tokens that
// also appear in the found title, so "Senior Data Engineer" matches a target
// of "Data Engineer" but "Data Analyst" does not.
func TitleSimilar(foundTitle string, targetTitles []string) bool {
	found := letterTokens(foundTitle)
	if len(found) == 0 {
		return false
	}

	for _, target := range targetTitles {
		tokens := letterTokens(target)
		if len(tokens) == 0 {
			continue
		}
		overlap := 0
		for tok := range tokens {
			if found[tok] {
				overlap++
			}
		}
		if float64(overlap)/float64(len(tokens)) >= similarityThreshold {
			return true
		}
	}
	return false
}

// dedupeKey identifies a posting for deduplication across title searches.
// The same job frequently surfaces under several target titles.
func dedupeKey(title, company, location string) string {
	return normalizeText(title) + "|" + normalizeText(company) + "|" + normalizeText(location)
}
