package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/analysis"
	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Group synonyms and rank the most demanded requirements",
	Long:  "Read extractions.json from a run directory, group synonymous tokens with one LLM call, count document frequency per category, and write canonical_map.json and market_tables.json.",
	RunE:  runAnalyze,
}

var (
	analyzeRunDir  string
	analyzeAPIKey  string
	analyzeModel   string
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRunDir, "run", "", "Run directory produced by the collect step")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Override the Gemini model for every tier")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = analyzeCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	store, err := artifacts.Open(analyzeRunDir)
	if err != nil {
		return err
	}
	if err := steps.ValidateDependencies(store, steps.Analyze); err != nil {
		return err
	}

	var set types.ExtractionSet
	if err := store.LoadJSON(artifacts.FileExtractions, &set); err != nil {
		return err
	}

	// The candidate profile only widens the synonym vocabulary; its absence
	// is not an error.
	var candidate *types.CandidateProfile
	if store.Has(artifacts.FileCandidateProfile) {
		candidate = &types.CandidateProfile{}
		if err := store.LoadJSON(artifacts.FileCandidateProfile, candidate); err != nil {
			return err
		}
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, buildModelConfig(analyzeModel), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	tokens := analysis.CollectTokens(set.Processed(), candidate)
	canonical, err := analysis.BuildCanonicalMap(ctx, analysis.NewLLMOracle(client), tokens)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v; continuing with identity mapping\n", err)
	}
	if err := store.SaveJSON(artifacts.FileCanonicalMap, canonical); err != nil {
		return err
	}

	tables := analysis.BuildMarketTables(set.Processed(), &canonical)
	if err := store.SaveJSON(artifacts.FileMarketTables, tables); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileMarketTables); err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(os.Stdout).PrintMarketTables(&tables)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Analyzed %d postings (%d tokens in the canonical map)\n", tables.TotalDocs, canonical.Len())
	_, _ = fmt.Fprintf(os.Stdout, "Market tables: %s\n", store.Path(artifacts.FileMarketTables))

	return nil
}
