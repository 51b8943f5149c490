package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/config"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/pipeline"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured requirements from collected postings",
	Long:  "Read postings.json from a run directory, extract skills, cloud platforms, and certifications from each posting with the LLM, and write extractions.json.",
	RunE:  runExtract,
}

var (
	extractRunDir  string
	extractAPIKey  string
	extractModel   string
	extractWorkers int
	extractVerbose bool
)

func init() {
	extractCmd.Flags().StringVar(&extractRunDir, "run", "", "Run directory produced by the collect step")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "Override the Gemini model for every tier")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", config.DefaultWorkers, "Number of concurrent extraction workers")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = extractCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	store, err := artifacts.Open(extractRunDir)
	if err != nil {
		return err
	}
	if err := steps.ValidateDependencies(store, steps.Extract); err != nil {
		return err
	}

	var batch types.PostingBatch
	if err := store.LoadJSON(artifacts.FilePostings, &batch); err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, buildModelConfig(extractModel), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	workers := extractWorkers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	set, err := pipeline.ExtractBatch(ctx, client, batch.Postings, workers, extractVerbose)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := store.SaveJSON(artifacts.FileExtractions, set); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileExtractions); err != nil {
		return err
	}

	if extractVerbose {
		observability.NewPrinter(os.Stdout).PrintExtractionSet(set)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extracted requirements from %d postings (%d failed)\n", len(set.Processed()), set.FailedCount())
	_, _ = fmt.Fprintf(os.Stdout, "Extractions: %s\n", store.Path(artifacts.FileExtractions))

	return nil
}
