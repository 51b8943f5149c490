// Package types provides type definitions for structured data used throughout the job-market analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Requirements represents the structured demand signals extracted from one
// document (a job posting or the candidate's resume). Technical skills and
// tools are a single merged category.
type Requirements struct {
	TechnicalSkills []string `json:"technical_skills_and_tools"`
	CloudPlatforms  []string `json:"cloud_platforms"`
	Certifications  []string `json:"certifications"`
	OtherKeywords   []string `json:"other_keywords,omitempty"`
}

// Coerce replaces nil category lists with empty ones so that downstream
// aggregation never has to distinguish "absent" from "empty"
func (r *Requirements) Coerce() {
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []string{}
	}
	if r.CloudPlatforms == nil {
		r.CloudPlatforms = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
	if r.OtherKeywords == nil {
		r.OtherKeywords = []string{}
	}
}

// AllTokens returns every raw token across all categories, in category order.
// Duplicates are preserved; normalization happens downstream.
func (r *Requirements) AllTokens() []string {
	tokens := make([]string, 0, len(r.TechnicalSkills)+len(r.CloudPlatforms)+len(r.Certifications)+len(r.OtherKeywords))
	tokens = append(tokens, r.TechnicalSkills...)
	tokens = append(tokens, r.CloudPlatforms...)
	tokens = append(tokens, r.Certifications...)
	tokens = append(tokens, r.OtherKeywords...)
	return tokens
}

// IsEmpty reports whether no category contains any token
func (r *Requirements) IsEmpty() bool {
	return len(r.TechnicalSkills) == 0 && len(r.CloudPlatforms) == 0 &&
		len(r.Certifications) == 0 && len(r.OtherKeywords) == 0
}

// PostingRequirements pairs one posting with its extracted requirements.
// Failed marks postings whose extraction call never produced a payload;
// they are excluded from the document total.
type PostingRequirements struct {
	PostingID string `json:"posting_id"`
	Requirements
	Failed     bool   `json:"failed,omitempty"`
	FailReason string `json:"fail_reason,omitempty"`
}

// ExtractionSet represents the output of the extraction step across a batch
type ExtractionSet struct {
	Items []PostingRequirements `json:"items"`
}

// Processed returns the items whose extraction produced a payload
// (including payloads coerced to empty lists)
func (s *ExtractionSet) Processed() []PostingRequirements {
	out := make([]PostingRequirements, 0, len(s.Items))
	for _, item := range s.Items {
		if !item.Failed {
			out = append(out, item)
		}
	}
	return out
}

// FailedCount returns the number of postings skipped due to extraction failure
func (s *ExtractionSet) FailedCount() int {
	n := 0
	for _, item := range s.Items {
		if item.Failed {
			n++
		}
	}
	return n
}

// CandidateProfile represents the requirements-shaped view of the
// candidate's resume
type CandidateProfile struct {
	SourcePath string `json:"source_path,omitempty"`
	Requirements
}
