package report

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

func sampleReport() *types.MarketReport {
	return &types.MarketReport{
		Metadata: types.RunMetadata{
			RunID:             "run-1234",
			Titles:            []string{"AI Engineer", "ML Engineer"},
			Country:           "Egypt",
			Requested:         20,
			Collected:         20,
			Processed:         19,
			FailedExtractions: 1,
			StartedAt:         time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
			FinishedAt:        time.Date(2026, 3, 14, 10, 42, 0, 0, time.UTC),
			Model:             "gemini-2.5-flash",
		},
		Tables: types.MarketTables{
			Skills: types.RankedTable{
				Items: []types.RankedItem{
					{Token: "python", Count: 17, Percent: 89.5},
					{Token: "sql", Count: 12, Percent: 63.2},
					{Token: "docker", Count: 9, Percent: 47.4},
				},
				TotalDocs: 19,
			},
			CloudPlatforms: types.RankedTable{
				Items: []types.RankedItem{
					{Token: "aws", Count: 11, Percent: 57.9},
					{Token: "gcp", Count: 6, Percent: 31.6},
				},
				TotalDocs: 19,
			},
			Certifications: types.RankedTable{
				Items: []types.RankedItem{
					{Token: "aws certified solutions architect", Count: 4, Percent: 21.1},
				},
				TotalDocs: 19,
			},
			TotalDocs: 19,
		},
		Gap: &types.GapResult{
			Missing: []types.RankedItem{
				{Token: "kubernetes", Count: 8, Percent: 42.1},
				{Token: "airflow", Count: 7, Percent: 36.8},
			},
			TopK: 5,
		},
	}
}

func emptyMarketReport() *types.MarketReport {
	r := sampleReport()
	r.Metadata.Collected = 0
	r.Metadata.Processed = 0
	r.Metadata.FailedExtractions = 0
	r.Tables = types.MarketTables{}
	r.Gap = &types.GapResult{TopK: 5}
	return r
}

func TestRenderMarkdown_Header(t *testing.T) {
	out, err := RenderMarkdown(sampleReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "# Job Market Analysis and Resume Boost Report")
	assert.Contains(t, out, "- **Target Job Titles:** AI Engineer, ML Engineer")
	assert.Contains(t, out, "- **Country:** Egypt")
	assert.Contains(t, out, "- **Number of job listings analyzed:** 19")
	assert.Contains(t, out, "failed extractions: 1")
	assert.Contains(t, out, "run-1234")
	assert.Contains(t, out, "March 14, 2026")
}

func TestRenderMarkdown_MarketTables(t *testing.T) {
	out, err := RenderMarkdown(sampleReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "## 1. Job Market Analysis")
	assert.Contains(t, out, "### Top Technical Skills and Tools")
	assert.Contains(t, out, "| 1 | python | 17 | 89.5% |")
	assert.Contains(t, out, "| 3 | docker | 9 | 47.4% |")
	assert.Contains(t, out, "| 1 | AWS | 11 | 57.9% |")
	assert.Contains(t, out, "| 2 | GCP | 6 | 31.6% |")
	assert.Contains(t, out, "| 1 | aws certified solutions architect | 4 | 21.1% |")
}

func TestRenderMarkdown_GapSuggestions(t *testing.T) {
	out, err := RenderMarkdown(sampleReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "## 2. Resume Boosting Suggestions")
	assert.Contains(t, out, "Skill to Learn")
	assert.Contains(t, out, "| 1 | kubernetes | 8 | 42.1% |")
	assert.Contains(t, out, "| 2 | airflow | 7 | 36.8% |")
}

func TestRenderMarkdown_SkillsCap(t *testing.T) {
	r := sampleReport()
	items := make([]types.RankedItem, 25)
	for i := range items {
		items[i] = types.RankedItem{Token: fmt.Sprintf("tool%02d", i+1), Count: 25 - i, Percent: 50}
	}
	r.Tables.Skills = types.RankedTable{Items: items, TotalDocs: 19}

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "tool20")
	assert.NotContains(t, out, "tool21")

	out, err = RenderMarkdown(r, Options{MaxSkills: 2})
	require.NoError(t, err)
	assert.Contains(t, out, "tool02")
	assert.NotContains(t, out, "tool03")

	out, err = RenderMarkdown(r, Options{MaxSkills: -1})
	require.NoError(t, err)
	assert.Contains(t, out, "tool25")
}

func TestRenderMarkdown_CertificationsCappedAtFive(t *testing.T) {
	r := sampleReport()
	items := make([]types.RankedItem, 6)
	for i := range items {
		items[i] = types.RankedItem{Token: fmt.Sprintf("cert%d", i+1), Count: 6 - i, Percent: 10}
	}
	r.Tables.Certifications = types.RankedTable{Items: items, TotalDocs: 19}

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "cert5")
	assert.NotContains(t, out, "cert6")
}

func TestRenderMarkdown_EmptyMarket(t *testing.T) {
	out, err := RenderMarkdown(emptyMarketReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "No job postings could be analyzed")
	assert.NotContains(t, out, "### Top Technical Skills and Tools")
	assert.Contains(t, out, "no market data to compare the resume against")
}

func TestRenderMarkdown_GapUnavailable(t *testing.T) {
	r := sampleReport()
	r.Gap = &types.GapResult{Unavailable: true, Reason: "resume file not found", TopK: 5}

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "Resume analysis was not available")
	assert.Contains(t, out, "resume file not found")
	assert.NotContains(t, out, "Skill to Learn")
}

func TestRenderMarkdown_NilGapReadsAsUnavailable(t *testing.T) {
	r := sampleReport()
	r.Gap = nil

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "Resume analysis was not available")
	assert.Contains(t, out, "no resume was analyzed")
}

func TestRenderMarkdown_LowConfidenceNote(t *testing.T) {
	r := sampleReport()
	r.Gap.LowConfidence = true

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "no skills could be recognized in the resume")
	assert.Contains(t, out, "| 1 | kubernetes | 8 | 42.1% |")
}

func TestRenderMarkdown_FullyCoveredResume(t *testing.T) {
	r := sampleReport()
	r.Gap = &types.GapResult{Missing: []types.RankedItem{}, TopK: 5}

	out, err := RenderMarkdown(r, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "already covers the most requested skills")
}

func TestRenderMarkdown_NilReport(t *testing.T) {
	_, err := RenderMarkdown(nil, Options{})
	require.Error(t, err)

	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestRenderHTML_Structure(t *testing.T) {
	out, err := RenderHTML(sampleReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Job Market Analysis and Resume Boost Report</title>")
	assert.Contains(t, out, "<strong>Target Job Titles:</strong> AI Engineer, ML Engineer")
	assert.Contains(t, out, "<strong>Number of job listings analyzed:</strong> 19")
	assert.Contains(t, out, "<td>python</td>")
	assert.Contains(t, out, "<td>AWS</td>")
	assert.Contains(t, out, "<td>kubernetes</td>")
	assert.Contains(t, out, "Run run-1234")
}

func TestRenderHTML_EscapesPostingDerivedTokens(t *testing.T) {
	r := sampleReport()
	r.Tables.Skills.Items[0].Token = `<script>alert("x")</script>`

	out, err := RenderHTML(r, Options{})
	require.NoError(t, err)

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_EmptyMarket(t *testing.T) {
	out, err := RenderHTML(emptyMarketReport(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "No job postings could be analyzed")
	assert.NotContains(t, out, "<h3>Top Technical Skills and Tools</h3>")
}

func TestRenderHTML_NilReport(t *testing.T) {
	_, err := RenderHTML(nil, Options{})
	require.Error(t, err)

	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "89.5%", formatPercent(89.5))
	assert.Equal(t, "50.0%", formatPercent(50))
	assert.Equal(t, "100.0%", formatPercent(100))
	assert.Equal(t, "0.0%", formatPercent(0))
}
