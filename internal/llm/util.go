// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from an LLM response. It strips
// markdown code fences, conversational preambles ("Here is the JSON:") and
// trailing chatter, returning the first balanced JSON object or array. Input
// without any JSON comes back unchanged apart from whitespace trimming.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	rest, fenced := strings.CutPrefix(text, "```json")
	if !fenced {
		rest, fenced = strings.CutPrefix(text, "```")
		if fenced {
			// Drop a bare language identifier left on the fence line
			if nl := strings.Index(rest, "\n"); nl >= 0 {
				lang := strings.TrimSpace(rest[:nl])
				if lang != "" && len(lang) < 20 && !strings.ContainsAny(lang, " {[") {
					rest = rest[nl+1:]
				}
			}
		}
	}
	if fenced {
		if idx := strings.LastIndex(rest, "```"); idx >= 0 {
			rest = rest[:idx]
		}
		text = strings.TrimSpace(rest)
	}

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	switch {
	case objIdx < 0 && arrIdx < 0:
		return text
	case arrIdx < 0 || (objIdx >= 0 && objIdx < arrIdx):
		if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
			return extracted
		}
		if arrIdx >= 0 {
			if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
				return extracted
			}
		}
	default:
		if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
			return extracted
		}
		if objIdx >= 0 {
			if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
				return extracted
			}
		}
	}

	return text
}

// extractJSONObject returns the first balanced {...} region of s, or ""
// when s does not start with one. Braces inside JSON strings do not count.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the first balanced [...] region of s, or ""
// when s does not start with one
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == open:
			depth++
		case !inString && c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
