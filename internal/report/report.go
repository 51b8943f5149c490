// Package report renders a MarketReport as markdown and as a standalone
// light-themed HTML page. Both renderers share one view model so the two
// formats always present the same numbers.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

// ReportTitle is the fixed heading of every rendered report.
const ReportTitle = "Job Market Analysis and Resume Boost Report"

// Row caps per category. Skills are configurable through Options; cloud
// platforms and certifications are small fixed vocabularies.
const (
	DefaultMaxSkills  = 20
	MaxCloudPlatforms = 3
	MaxCertifications = 5
)

// Options controls rendering.
type Options struct {
	// MaxSkills caps the technical-skills table. Zero means
	// DefaultMaxSkills; a negative value lists every skill.
	MaxSkills int
}

// RenderError represents a failure to render a report
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// cloudDisplay maps canonical cloud tokens to their usual spelling.
var cloudDisplay = map[string]string{
	"aws":   "AWS",
	"azure": "Azure",
	"gcp":   "GCP",
}

// reportView is the data structure both templates execute against.
type reportView struct {
	Title          string
	Titles         string
	Country        string
	Requested      int
	Collected      int
	Processed      int
	Failed         int
	RunID          string
	Model          string
	GeneratedAt    string
	HasMarket      bool
	Skills         []rowView
	Cloud          []rowView
	Certifications []rowView
	Gap            gapView
}

// rowView is one table row: a ranked token with its document stats.
type rowView struct {
	Rank    int
	Token   string
	Count   int
	Percent string
}

type gapView struct {
	Unavailable   bool
	Reason        string
	LowConfidence bool
	Suggestions   []rowView
}

// buildView flattens a MarketReport into template-ready data.
func buildView(report *types.MarketReport, opts Options) reportView {
	maxSkills := opts.MaxSkills
	if maxSkills == 0 {
		maxSkills = DefaultMaxSkills
	}

	meta := report.Metadata
	view := reportView{
		Title:          ReportTitle,
		Titles:         strings.Join(meta.Titles, ", "),
		Country:        meta.Country,
		Requested:      meta.Requested,
		Collected:      meta.Collected,
		Processed:      meta.Processed,
		Failed:         meta.FailedExtractions,
		RunID:          meta.RunID,
		Model:          meta.Model,
		GeneratedAt:    generatedAt(meta),
		HasMarket:      report.Tables.TotalDocs > 0,
		Skills:         tableRows(report.Tables.Skills, maxSkills, nil),
		Cloud:          tableRows(report.Tables.CloudPlatforms, MaxCloudPlatforms, cloudDisplay),
		Certifications: tableRows(report.Tables.Certifications, MaxCertifications, nil),
	}

	if report.Gap == nil {
		view.Gap = gapView{Unavailable: true, Reason: "no resume was analyzed"}
		return view
	}

	view.Gap = gapView{
		Unavailable:   report.Gap.Unavailable,
		Reason:        report.Gap.Reason,
		LowConfidence: report.Gap.LowConfidence,
		Suggestions:   itemRows(report.Gap.Missing, nil),
	}
	return view
}

// tableRows caps a ranked table and converts it to display rows. A negative
// limit keeps every item.
func tableRows(table types.RankedTable, limit int, display map[string]string) []rowView {
	items := table.Items
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return itemRows(items, display)
}

func itemRows(items []types.RankedItem, display map[string]string) []rowView {
	rows := make([]rowView, len(items))
	for i, item := range items {
		token := item.Token
		if name, ok := display[token]; ok {
			token = name
		}
		rows[i] = rowView{
			Rank:    i + 1,
			Token:   token,
			Count:   item.Count,
			Percent: formatPercent(item.Percent),
		}
	}
	return rows
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func generatedAt(meta types.RunMetadata) string {
	at := meta.FinishedAt
	if at.IsZero() {
		at = meta.StartedAt
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.Format("January 2, 2006 15:04")
}
