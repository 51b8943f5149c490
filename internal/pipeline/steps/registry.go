// Package steps provides step definitions and dependency validation
// for the market analysis pipeline.
package steps

import (
	"fmt"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
)

// Step names, in pipeline order.
const (
	Collect     = "collect"
	Extract     = "extract"
	ParseResume = "parse_resume"
	Analyze     = "analyze"
	Gap         = "gap"
	Report      = "report"
	Evaluate    = "evaluate"
)

// Step categories used for progress events.
const (
	CategoryCollection = "collection"
	CategoryExtraction = "extraction"
	CategoryAnalysis   = "analysis"
	CategoryReporting  = "reporting"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name     string
	Category string
	// Requires lists artifact files that must exist in the run directory
	// before the step can execute.
	Requires []string
	// Optional lists artifact files the step reads when present.
	Optional []string
	// Produces lists artifact files the step writes.
	Produces []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	Collect: {
		Name:     Collect,
		Category: CategoryCollection,
		Requires: []string{},
		Optional: []string{},
		Produces: []string{artifacts.FilePostings},
	},
	Extract: {
		Name:     Extract,
		Category: CategoryExtraction,
		Requires: []string{artifacts.FilePostings},
		Optional: []string{},
		Produces: []string{artifacts.FileExtractions},
	},
	ParseResume: {
		Name:     ParseResume,
		Category: CategoryExtraction,
		Requires: []string{},
		Optional: []string{},
		Produces: []string{artifacts.FileCandidateProfile},
	},
	Analyze: {
		Name:     Analyze,
		Category: CategoryAnalysis,
		Requires: []string{artifacts.FileExtractions},
		Optional: []string{artifacts.FileCandidateProfile},
		Produces: []string{artifacts.FileCanonicalMap, artifacts.FileMarketTables},
	},
	Gap: {
		Name:     Gap,
		Category: CategoryAnalysis,
		Requires: []string{artifacts.FileMarketTables},
		Optional: []string{artifacts.FileCandidateProfile, artifacts.FileCanonicalMap},
		Produces: []string{artifacts.FileGap},
	},
	Report: {
		Name:     Report,
		Category: CategoryReporting,
		Requires: []string{artifacts.FileMarketTables},
		Optional: []string{artifacts.FileGap},
		Produces: []string{artifacts.FileReport, artifacts.FileReportMarkdown, artifacts.FileReportHTML},
	},
	Evaluate: {
		Name:     Evaluate,
		Category: CategoryReporting,
		Requires: []string{artifacts.FileReportHTML},
		Optional: []string{},
		Produces: []string{artifacts.FileEvaluation},
	},
}

// Order lists step names in canonical execution order.
var Order = []string{Collect, Extract, ParseResume, Analyze, Gap, Report, Evaluate}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step             string
	MissingArtifacts []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing artifacts: %v", e.MissingArtifacts)
}

// ValidateDependencies checks that every artifact a step requires exists
// in the run directory
func ValidateDependencies(store *artifacts.Store, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, name := range def.Requires {
		if !store.Has(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:             stepName,
			MissingArtifacts: missing,
		}
	}

	return nil
}

// Completed reports whether a step has written all of its artifacts
func Completed(store *artifacts.Store, stepName string) bool {
	def, ok := StepRegistry[stepName]
	if !ok {
		return false
	}
	for _, name := range def.Produces {
		if !store.Has(name) {
			return false
		}
	}
	return true
}

// GetAvailableSteps returns steps that can be executed (dependencies met)
func GetAvailableSteps(store *artifacts.Store) []string {
	var available []string

	for _, stepName := range Order {
		if Completed(store, stepName) {
			continue // Already completed
		}
		if err := ValidateDependencies(store, stepName); err != nil {
			continue // Dependencies not met
		}
		available = append(available, stepName)
	}

	return available
}

// GetBlockedSteps returns steps that are blocked (dependencies not met)
func GetBlockedSteps(store *artifacts.Store) []string {
	var blocked []string

	for _, stepName := range Order {
		if Completed(store, stepName) {
			continue
		}
		if err := ValidateDependencies(store, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}

	return blocked
}
