// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPostingBatch outputs a summary of the collected postings.
func (p *Printer) PrintPostingBatch(batch *types.PostingBatch) {
	if batch == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Collected: %d of %d requested\n", batch.Collected(), batch.Requested))
	titles := strings.Join(batch.Titles, ", ")
	if len(titles) > 45 {
		titles = titles[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("Titles:    %s\n", titles))
	sb.WriteString(fmt.Sprintf("Country:   %s\n", batch.Country))

	if len(batch.Postings) > 0 {
		sb.WriteString("\n")
		count := min(len(batch.Postings), maxItemsToShow)
		for i := 0; i < count; i++ {
			posting := batch.Postings[i]
			line := posting.Title
			if posting.Company != "" {
				line += " @ " + posting.Company
			}
			if len(line) > 45 {
				line = line[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", line))
		}
		if len(batch.Postings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(batch.Postings)-maxItemsToShow))
		}
	}

	p.printBox("COLLECTED POSTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtractionSet outputs per-posting extraction outcomes.
func (p *Printer) PrintExtractionSet(set *types.ExtractionSet) {
	if set == nil || len(set.Items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed: %d   Failed: %d\n\n", len(set.Processed()), set.FailedCount()))

	count := min(len(set.Items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := set.Items[i]
		if item.Failed {
			reason := item.FailReason
			if len(reason) > 30 {
				reason = reason[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf("✗ %s: %s\n", item.PostingID, reason))
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s: %d skills, %d cloud, %d certs\n",
			item.PostingID, len(item.TechnicalSkills), len(item.CloudPlatforms), len(item.Certifications)))
	}

	if len(set.Items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(set.Items)-maxItemsToShow))
	}

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMarketTables outputs the top of each ranked demand table.
func (p *Printer) PrintMarketTables(tables *types.MarketTables) {
	if tables == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents analyzed: %d\n", tables.TotalDocs))

	writeTable := func(name string, table types.RankedTable) {
		if len(table.Items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", name))
		count := min(len(table.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := table.Items[i]
			sb.WriteString(fmt.Sprintf("  %d. %s  %d (%.1f%%)\n", i+1, item.Token, item.Count, item.Percent))
		}
		if len(table.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(table.Items)-maxItemsToShow))
		}
	}

	writeTable("Skills", tables.Skills)
	writeTable("Cloud platforms", tables.CloudPlatforms)
	writeTable("Certifications", tables.Certifications)

	p.printBox("MARKET DEMAND", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGap outputs the resume gap analysis summary.
func (p *Printer) PrintGap(gap *types.GapResult) {
	if gap == nil {
		return
	}

	if gap.Unavailable {
		content := "Resume analysis unavailable"
		if gap.Reason != "" {
			content += "\n" + gap.Reason
		}
		p.printBox("RESUME GAP", content)
		return
	}

	var sb strings.Builder
	if gap.LowConfidence {
		sb.WriteString("Note: no recognizable skills in the resume\n\n")
	}

	if len(gap.Missing) == 0 {
		sb.WriteString("Resume covers the top market demands")
	} else {
		sb.WriteString(fmt.Sprintf("Top %d skills to learn next:\n", len(gap.Missing)))
		for i, item := range gap.Missing {
			sb.WriteString(fmt.Sprintf("  %d. %s  %d (%.1f%%)\n", i+1, item.Token, item.Count, item.Percent))
		}
	}

	p.printBox("RESUME GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the judge's scores for a rendered report.
func (p *Printer) PrintEvaluation(eval *types.ReportEvaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Relevance:     %2d   Accuracy:  %2d\n", eval.Relevance, eval.Accuracy))
	sb.WriteString(fmt.Sprintf("Completeness:  %2d   Clarity:   %2d\n", eval.Completeness, eval.Clarity))
	sb.WriteString(fmt.Sprintf("Visual appeal: %2d   Insights:  %2d\n", eval.VisualAppeal, eval.Insights))
	sb.WriteString(fmt.Sprintf("\nFinal score: %.1f / 10\n", eval.FinalScore))

	if eval.Comments != "" {
		comments := eval.Comments
		if len(comments) > 160 {
			comments = comments[:157] + "..."
		}
		sb.WriteString("\n" + comments)
	}

	p.printBox("REPORT EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}
