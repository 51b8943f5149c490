// Package resume - pdf.go extracts text from PDF resumes.
package resume

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the plain text out of every readable page. Pages with
// broken encodings are skipped rather than failing the whole document.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &Error{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	text := CleanText(builder.String())
	if text == "" {
		return "", &Error{Path: path, Message: "no text content found in PDF"}
	}
	return text, nil
}
