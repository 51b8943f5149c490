// Package types provides type definitions for structured data used throughout the job-market analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GapResult represents the outcome of comparing market demand against the
// candidate's profile. Missing is ordered by descending market frequency and
// truncated to TopK. LowConfidence is set when the candidate token set was
// empty, Unavailable when the resume could not be read at all; in the latter
// case Missing is nil and the report renders an explanatory note instead.
type GapResult struct {
	Missing       []RankedItem `json:"missing"`
	TopK          int          `json:"top_k"`
	LowConfidence bool         `json:"low_confidence,omitempty"`
	Unavailable   bool         `json:"unavailable,omitempty"`
	Reason        string       `json:"reason,omitempty"`
}
