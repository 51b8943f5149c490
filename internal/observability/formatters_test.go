package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/job-market-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintPostingBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	batch := &types.PostingBatch{
		Titles:    []string{"AI Engineer", "ML Engineer"},
		Country:   "Egypt",
		Requested: 20,
		Postings: []types.Posting{
			{ID: "job-1", Title: "AI Engineer", Company: "Acme Corp", Source: types.PostingSourceListing},
			{ID: "job-2", Title: "ML Engineer", Company: "Globex"},
		},
	}

	p.PrintPostingBatch(batch)
	output := buf.String()

	assert.Contains(t, output, "COLLECTED POSTINGS")
	assert.Contains(t, output, "Collected: 2 of 20 requested")
	assert.Contains(t, output, "AI Engineer, ML Engineer")
	assert.Contains(t, output, "Egypt")
	assert.Contains(t, output, "AI Engineer @ Acme Corp")
	assert.Contains(t, output, "ML Engineer @ Globex")
}

func TestPrintPostingBatch_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPostingBatch(nil)

	assert.Empty(t, buf.String())
}

func TestPrintPostingBatch_ManyPostingsTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	batch := &types.PostingBatch{
		Titles:    []string{"Data Engineer"},
		Country:   "Egypt",
		Requested: 10,
	}
	for i := 0; i < 8; i++ {
		batch.Postings = append(batch.Postings, types.Posting{
			ID:    "job",
			Title: "Data Engineer",
		})
	}

	p.PrintPostingBatch(batch)
	output := buf.String()

	assert.Contains(t, output, "... and 3 more postings")
}

func TestPrintExtractionSet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set := &types.ExtractionSet{
		Items: []types.PostingRequirements{
			{
				PostingID: "job-1",
				Requirements: types.Requirements{
					TechnicalSkills: []string{"python", "sql"},
					CloudPlatforms:  []string{"aws"},
				},
			},
			{
				PostingID:  "job-2",
				Failed:     true,
				FailReason: "model returned no payload",
			},
		},
	}

	p.PrintExtractionSet(set)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "Processed: 1   Failed: 1")
	assert.Contains(t, output, "job-1: 2 skills, 1 cloud, 0 certs")
	assert.Contains(t, output, "✗ job-2")
}

func TestPrintExtractionSet_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtractionSet(nil)
	p.PrintExtractionSet(&types.ExtractionSet{})

	assert.Empty(t, buf.String())
}

func TestPrintMarketTables(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tables := &types.MarketTables{
		Skills: types.RankedTable{
			Items: []types.RankedItem{
				{Token: "python", Count: 17, Percent: 89.5},
				{Token: "sql", Count: 12, Percent: 63.2},
			},
			TotalDocs: 19,
		},
		CloudPlatforms: types.RankedTable{
			Items:     []types.RankedItem{{Token: "aws", Count: 11, Percent: 57.9}},
			TotalDocs: 19,
		},
		TotalDocs: 19,
	}

	p.PrintMarketTables(tables)
	output := buf.String()

	assert.Contains(t, output, "MARKET DEMAND")
	assert.Contains(t, output, "Documents analyzed: 19")
	assert.Contains(t, output, "1. python  17 (89.5%)")
	assert.Contains(t, output, "2. sql  12 (63.2%)")
	assert.Contains(t, output, "Cloud platforms:")
	assert.Contains(t, output, "1. aws  11 (57.9%)")
	assert.NotContains(t, output, "Certifications:")
}

func TestPrintMarketTables_LongTableTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tables := &types.MarketTables{TotalDocs: 10}
	for i := 0; i < 9; i++ {
		tables.Skills.Items = append(tables.Skills.Items, types.RankedItem{
			Token:   "skill",
			Count:   9 - i,
			Percent: 10,
		})
	}

	p.PrintMarketTables(tables)
	output := buf.String()

	assert.Contains(t, output, "... and 4 more")
}

func TestPrintGap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gap := &types.GapResult{
		Missing: []types.RankedItem{
			{Token: "kubernetes", Count: 8, Percent: 42.1},
			{Token: "airflow", Count: 5, Percent: 26.3},
		},
		TopK: 5,
	}

	p.PrintGap(gap)
	output := buf.String()

	assert.Contains(t, output, "RESUME GAP")
	assert.Contains(t, output, "Top 2 skills to learn next")
	assert.Contains(t, output, "1. kubernetes  8 (42.1%)")
	assert.Contains(t, output, "2. airflow  5 (26.3%)")
}

func TestPrintGap_Unavailable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gap := &types.GapResult{
		Unavailable: true,
		Reason:      "no resume was analyzed",
	}

	p.PrintGap(gap)
	output := buf.String()

	assert.Contains(t, output, "Resume analysis unavailable")
	assert.Contains(t, output, "no resume was analyzed")
}

func TestPrintGap_FullyCovered(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gap := &types.GapResult{
		Missing: []types.RankedItem{},
		TopK:    5,
	}

	p.PrintGap(gap)
	output := buf.String()

	assert.Contains(t, output, "Resume covers the top market demands")
}

func TestPrintGap_LowConfidence(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gap := &types.GapResult{
		Missing:       []types.RankedItem{{Token: "python", Count: 9, Percent: 90}},
		TopK:          5,
		LowConfidence: true,
	}

	p.PrintGap(gap)
	output := buf.String()

	assert.Contains(t, output, "no recognizable skills in the resume")
	assert.Contains(t, output, "python")
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	eval := &types.ReportEvaluation{
		Relevance:    9,
		Accuracy:     8,
		Completeness: 9,
		Clarity:      8,
		VisualAppeal: 7,
		Insights:     9,
		FinalScore:   8.5,
		Comments:     "Clear and well-structured report.",
	}

	p.PrintEvaluation(eval)
	output := buf.String()

	assert.Contains(t, output, "REPORT EVALUATION")
	assert.Contains(t, output, "Relevance:      9")
	assert.Contains(t, output, "Final score: 8.5 / 10")
	assert.Contains(t, output, "Clear and well-structured report.")
}

func TestPrintEvaluation_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	batch := &types.PostingBatch{
		Titles:    []string{"Senior Staff Principal Distinguished Machine Learning Engineer"},
		Country:   "United Arab Emirates",
		Requested: 1,
		Postings: []types.Posting{
			{Title: "A Very Long Posting Title That Should Be Truncated", Company: "A Very Long Company Name Limited"},
		},
	}

	p.PrintPostingBatch(batch)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
