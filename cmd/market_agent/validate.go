package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate run artifacts against their JSON schemas",
	Long:  "Validate every schema-checked artifact in a run directory, or a single JSON file against an explicit schema when --schema and --json are given.",
	RunE:  runValidate,
}

var (
	validateRunDir     string
	validateSchemaPath string
	validateJSONPath   string
)

func init() {
	validateCmd.Flags().StringVar(&validateRunDir, "run", "", "Run directory whose artifacts should be validated")
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON schema file")
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Path to the JSON file to validate")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateSchemaPath != "" || validateJSONPath != "" {
		if validateSchemaPath == "" || validateJSONPath == "" {
			return fmt.Errorf("--schema and --json must be used together")
		}
		if err := schemas.ValidateJSON(validateSchemaPath, validateJSONPath); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "OK %s\n", validateJSONPath)
		return nil
	}

	if validateRunDir == "" {
		return fmt.Errorf("either --run or the --schema/--json pair is required")
	}

	store, err := artifacts.Open(validateRunDir)
	if err != nil {
		return err
	}

	checked := 0
	failed := 0
	for _, stepName := range steps.Order {
		for _, name := range steps.StepRegistry[stepName].Produces {
			if _, mapped := schemas.ArtifactSchemas[name]; !mapped || !store.Has(name) {
				continue
			}
			checked++
			if err := validateArtifact(store, name); err != nil {
				failed++
				_, _ = fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", name, err)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "OK %s\n", name)
		}
	}

	if checked == 0 {
		return fmt.Errorf("no schema-checked artifacts found in %s", store.Dir())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d artifacts failed validation", failed, checked)
	}
	_, _ = fmt.Fprintf(os.Stdout, "All %d artifacts valid\n", checked)
	return nil
}

// validateArtifact checks a saved artifact against its schema. Artifacts
// without a schema, or whose schema file cannot be located, are skipped.
// Only a genuine mismatch between the data and the schema is an error;
// schema loading problems degrade to a warning.
func validateArtifact(store *artifacts.Store, name string) error {
	schemaPath := schemas.SchemaFor(name)
	if schemaPath == "" {
		return nil
	}
	if err := schemas.ValidateJSON(schemaPath, store.Path(name)); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s does not validate against its schema: %w", name, err)
		} else if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate %s against schema (schema loading failed): %v\n", name, err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate %s against schema: %v\n", name, err)
		}
	}
	return nil
}
