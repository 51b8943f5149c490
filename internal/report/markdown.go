package report

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

//go:embed templates/report.md.tmpl
var markdownTemplate string

// RenderMarkdown renders the report as a markdown document.
func RenderMarkdown(report *types.MarketReport, opts Options) (string, error) {
	if report == nil {
		return "", &RenderError{Message: "report is nil"}
	}

	tmpl, err := template.New("report.md").Parse(markdownTemplate)
	if err != nil {
		return "", &RenderError{Message: "failed to parse markdown template", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildView(report, opts)); err != nil {
		return "", &RenderError{Message: "failed to execute markdown template", Cause: err}
	}

	return result.String(), nil
}
