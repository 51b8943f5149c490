// Package types provides type definitions for structured data used throughout the job-market analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Description sources, in order of preference.
const (
	PostingSourceListing = "listing" // full description from the per-job listing endpoint
	PostingSourceSearch  = "search"  // snippet from the search results page
	PostingSourcePage    = "page"    // text extracted from the posting's own web page
)

// Posting represents a single collected job posting
type Posting struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Via         string `json:"via,omitempty"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Source      string `json:"source,omitempty"` // where Description came from
}

// PostingBatch represents the output of the collection step: the query that
// produced it plus every posting that survived filtering and deduplication
type PostingBatch struct {
	Titles    []string  `json:"titles"`
	Country   string    `json:"country"`
	Requested int       `json:"requested"`
	Postings  []Posting `json:"postings"`
}

// Collected returns the number of postings in the batch
func (b *PostingBatch) Collected() int {
	return len(b.Postings)
}
