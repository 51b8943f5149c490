// Package extraction turns posting and resume text into structured
// requirements using LLM extraction. Failures degrade per document: an
// unreachable oracle marks the posting skipped, an unparseable payload
// becomes an empty contribution, and partial schema drift is coerced
// field by field.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// Prompt size limits. Posting descriptions and resume text are cut to these
// lengths before they reach the model.
const (
	maxPostingChars = 9000
	maxResumeChars  = 12000
)

// FromPosting extracts the requirements one posting contributes to the
// market analysis. The returned item is always usable:
//
//   - oracle failure: item.Failed is set and the error explains why; the
//     posting drops out of the document total
//   - unparseable payload: the item carries empty lists and still counts as
//     processed; the error is informational
//   - success: nil error
//
// Callers log non-nil errors as warnings and continue.
func FromPosting(ctx context.Context, client llm.Client, posting types.Posting) (types.PostingRequirements, error) {
	item := types.PostingRequirements{PostingID: posting.ID}
	item.Coerce()

	prompt := llm.BuildExtractionPrompt(llm.PostingRequirementsSchema(), postingText(posting))
	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		item.Failed = true
		item.FailReason = err.Error()
		return item, &APICallError{Message: fmt.Sprintf("extraction failed for posting %s", posting.ID), Cause: err}
	}

	reqs, err := parseRequirements(response)
	if err != nil {
		// Empty contribution, still a processed document
		return item, err
	}

	item.Requirements = reqs
	return item, nil
}

// FromResume extracts the candidate's profile from resume text. Unlike
// posting extraction there is no partial outcome: any failure makes the gap
// stage unavailable, so errors surface directly.
func FromResume(ctx context.Context, client llm.Client, resumeText string) (*types.CandidateProfile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	prompt := llm.BuildExtractionPrompt(llm.CandidateProfileSchema(), truncate(resumeText, maxResumeChars))
	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume extraction failed", Cause: err}
	}

	reqs, err := parseRequirements(response)
	if err != nil {
		return nil, err
	}

	return &types.CandidateProfile{Requirements: reqs}, nil
}

// postingText assembles the text block the oracle sees for one posting.
func postingText(p types.Posting) string {
	var sb strings.Builder
	sb.WriteString("Job title: ")
	sb.WriteString(p.Title)
	if p.Company != "" {
		sb.WriteString("\nCompany: ")
		sb.WriteString(p.Company)
	}
	if p.Location != "" {
		sb.WriteString("\nLocation: ")
		sb.WriteString(p.Location)
	}
	sb.WriteString("\n\n")
	sb.WriteString(truncate(p.Description, maxPostingChars))
	return sb.String()
}

// truncate cuts s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// parseRequirements decodes the oracle payload leniently. Missing keys and
// wrong-shaped fields become empty lists; only a payload that is not a JSON
// object at all is a parse error.
func parseRequirements(jsonText string) (types.Requirements, error) {
	empty := types.Requirements{}
	empty.Coerce()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonText)), &raw); err != nil {
		return empty, &ParseError{Message: "payload is not a JSON object", Cause: err}
	}

	return types.Requirements{
		TechnicalSkills: stringList(raw["technical_skills_and_tools"]),
		CloudPlatforms:  stringList(raw["cloud_platforms"]),
		Certifications:  stringList(raw["certifications"]),
		OtherKeywords:   stringList(raw["other_keywords"]),
	}, nil
}

// stringList decodes a field that should be a list of strings, tolerating a
// bare string and dropping non-string members of a mixed list.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return []string{}
		}
		return []string{single}
	}

	var mixed []any
	if err := json.Unmarshal(raw, &mixed); err == nil {
		out := make([]string, 0, len(mixed))
		for _, v := range mixed {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	return []string{}
}
