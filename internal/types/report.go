// Package types provides type definitions for structured data used throughout the job-market analyzer.
package types

import "time"

// RunMetadata represents bookkeeping for one pipeline run, surfaced in the
// report header
type RunMetadata struct {
	RunID             string    `json:"run_id"`
	Titles            []string  `json:"titles"`
	Country           string    `json:"country"`
	Requested         int       `json:"requested"`
	Collected         int       `json:"collected"`
	Processed         int       `json:"processed"`
	FailedExtractions int       `json:"failed_extractions,omitempty"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at,omitempty"`
	Model             string    `json:"model,omitempty"`
}

// MarketReport is the final artifact the renderers consume: run metadata,
// the ranked market tables, and the resume gap analysis when available
type MarketReport struct {
	Metadata RunMetadata  `json:"metadata"`
	Tables   MarketTables `json:"tables"`
	Gap      *GapResult   `json:"gap,omitempty"`
}

// ReportEvaluation represents an LLM judgment of a rendered report's quality.
// Category scores are on a 1-10 scale.
type ReportEvaluation struct {
	Relevance    int     `json:"relevance"`
	Accuracy     int     `json:"accuracy"`
	Completeness int     `json:"completeness"`
	Clarity      int     `json:"clarity"`
	VisualAppeal int     `json:"visual_appeal"`
	Insights     int     `json:"insights"`
	FinalScore   float64 `json:"final_score"`
	Comments     string  `json:"comments,omitempty"`
}
