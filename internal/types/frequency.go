// Package types provides type definitions for structured data used throughout the job-market analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FrequencyTable represents document-frequency counts for one token category:
// each token's count is the number of documents mentioning it at least once
type FrequencyTable struct {
	Counts    map[string]int `json:"counts"`
	TotalDocs int            `json:"total_docs"`
}

// RankedItem represents one token with its document count and the share of
// documents mentioning it, rounded to one decimal
type RankedItem struct {
	Token   string  `json:"token"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// RankedTable represents a frequency table sorted by descending count
// (ties broken lexicographically), optionally truncated to a top-N
type RankedTable struct {
	Items     []RankedItem `json:"items"`
	TotalDocs int          `json:"total_docs"`
}

// Tokens returns the ranked tokens in order
func (t *RankedTable) Tokens() []string {
	out := make([]string, len(t.Items))
	for i, item := range t.Items {
		out[i] = item.Token
	}
	return out
}

// MarketTables represents the ranked market-demand tables per category
type MarketTables struct {
	Skills         RankedTable `json:"skills"`
	CloudPlatforms RankedTable `json:"cloud_platforms"`
	Certifications RankedTable `json:"certifications"`
	TotalDocs      int         `json:"total_docs"`
}
