// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "PostingRequirements")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
	Notes       []string      // Extra schema-specific instructions appended to the prompt
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\nIMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or infer.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	for _, note := range schema.Notes {
		sb.WriteString("- ")
		sb.WriteString(note)
		sb.WriteString("\n")
	}

	sb.WriteString("\nInput text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// PostingRequirementsSchema returns the extraction schema for job postings.
// Extracts the demand signals a single posting contributes to the market
// analysis: technical skills and tools (one merged category), cloud
// platforms, certifications, and other recurring keywords.
func PostingRequirementsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "PostingRequirements",
		Description: `You are an expert job-market analyst. Your task is to extract the hiring demand signals from a single job posting.
Extract only what the posting actually mentions. A technology mentioned several times still appears once per list.`,
		Fields: []SchemaField{
			{
				Name:        "technical_skills_and_tools",
				Type:        "[\"string\"]",
				Description: "Technical skills and tools the posting asks for (e.g., Python, SQL, Airflow, Spark, Docker, Kubernetes)",
				Required:    true,
			},
			{
				Name:        "cloud_platforms",
				Type:        "[\"string\"]",
				Description: "Cloud platforms the posting mentions: AWS, Azure, GCP, including spelled-out variants",
				Required:    true,
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Professional certifications the posting asks for or prefers (e.g., AWS Certified Solutions Architect, CKA)",
				Required:    true,
			},
			{
				Name:        "other_keywords",
				Type:        "[\"string\"]",
				Description: "Other recurring requirement keywords: methodologies, domains, spoken languages",
				Required:    false,
			},
		},
		Notes: []string{
			"Use short names as they appear in the posting (\"Python\", not \"Python programming language\").",
			"Leave a list empty when the posting mentions nothing for that category.",
		},
	}
}

// CandidateProfileSchema returns the extraction schema for resume text.
// Mirrors PostingRequirementsSchema so market demand and candidate supply
// land in the same categories.
func CandidateProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CandidateProfile",
		Description: `You are an expert resume analyst. Your task is to extract the skills a candidate demonstrably has from their resume text.
Extract only what the resume states. Do not grade or embellish.`,
		Fields: []SchemaField{
			{
				Name:        "technical_skills_and_tools",
				Type:        "[\"string\"]",
				Description: "Technical skills and tools the candidate lists or has used in past roles",
				Required:    true,
			},
			{
				Name:        "cloud_platforms",
				Type:        "[\"string\"]",
				Description: "Cloud platforms the candidate has worked with: AWS, Azure, GCP, including spelled-out variants",
				Required:    true,
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Certifications the candidate holds",
				Required:    true,
			},
			{
				Name:        "other_keywords",
				Type:        "[\"string\"]",
				Description: "Other notable keywords: methodologies, domains, spoken languages",
				Required:    false,
			},
		},
		Notes: []string{
			"Use short names (\"Terraform\", not \"Terraform infrastructure-as-code tooling\").",
		},
	}
}
