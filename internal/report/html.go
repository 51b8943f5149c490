package report

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

//go:embed templates/report.html.tmpl
var htmlTemplate string

// RenderHTML renders the report as a self-contained HTML page. All report
// values pass through html/template escaping, so posting-derived tokens
// cannot inject markup.
func RenderHTML(report *types.MarketReport, opts Options) (string, error) {
	if report == nil {
		return "", &RenderError{Message: "report is nil"}
	}

	tmpl, err := template.New("report.html").Parse(htmlTemplate)
	if err != nil {
		return "", &RenderError{Message: "failed to parse HTML template", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildView(report, opts)); err != nil {
		return "", &RenderError{Message: "failed to execute HTML template", Cause: err}
	}

	return result.String(), nil
}
