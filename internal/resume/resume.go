// Package resume extracts plain text from candidate resume files so the
// extraction oracle can build a candidate profile from it.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the resume file types the extractor understands.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// Error represents a resume text extraction failure.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume extraction failed for %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExtractText reads a resume file and returns its cleaned plain text.
// PDF files go through the PDF text extractor; .txt and .md files are read
// directly. A file from which no text can be recovered (for example a
// scanned, image-only PDF) is an error, not an empty result.
func ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Path: path, Message: "failed to read file", Cause: err}
		}
		text := CleanText(string(content))
		if text == "" {
			return "", &Error{Path: path, Message: "file contains no text"}
		}
		return text, nil
	default:
		return "", &Error{
			Path:    path,
			Message: fmt.Sprintf("unsupported resume format %q (supported: %s)", ext, strings.Join(SupportedExtensions, ", ")),
		}
	}
}
