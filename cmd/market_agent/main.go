// Package main provides the entry point for the Job Market Analyzer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "market_agent",
	Short: "Job Market Analyzer CLI",
	Long:  "Job Market Analyzer collects job postings for target roles, distills the most demanded skills, compares them against a resume, and renders a market report with learning suggestions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildModelConfig returns the Gemini tier configuration, with a single
// model override applied to every tier when one is given.
func buildModelConfig(model string) *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	if model != "" {
		cfg = cfg.WithModel(llm.TierLite, model).
			WithModel(llm.TierStandard, model).
			WithModel(llm.TierAdvanced, model)
	}
	return cfg
}
