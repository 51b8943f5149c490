package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/evaluation"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a rendered report with an LLM judge",
	Long:  "Read report.html from a run directory, judge its relevance, accuracy, completeness, clarity, visual appeal, and insight quality, and write evaluation.json.",
	RunE:  runEvaluate,
}

var (
	evaluateRunDir string
	evaluateAPIKey string
	evaluateModel  string
)

func init() {
	evaluateCmd.Flags().StringVar(&evaluateRunDir, "run", "", "Run directory produced by the collect step")
	evaluateCmd.Flags().StringVar(&evaluateAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	evaluateCmd.Flags().StringVar(&evaluateModel, "model", "", "Override the Gemini model for every tier")

	_ = evaluateCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	apiKey := evaluateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	store, err := artifacts.Open(evaluateRunDir)
	if err != nil {
		return err
	}
	if err := steps.ValidateDependencies(store, steps.Evaluate); err != nil {
		return err
	}

	html, err := store.LoadText(artifacts.FileReportHTML)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, buildModelConfig(evaluateModel), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	eval, err := evaluation.Evaluate(ctx, client, html)
	if err != nil {
		return fmt.Errorf("report evaluation failed: %w", err)
	}

	if err := store.SaveJSON(artifacts.FileEvaluation, eval); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileEvaluation); err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintEvaluation(eval)
	_, _ = fmt.Fprintf(os.Stdout, "Evaluation: %s\n", store.Path(artifacts.FileEvaluation))

	return nil
}
