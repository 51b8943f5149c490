package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/config"
	"github.com/jonathan/job-market-analyzer/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full market analysis pipeline end-to-end",
	Long: `Orchestrates the entire market analysis: collection -> extraction -> resume parsing -> synonym grouping -> ranking -> gap analysis -> report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runTitles      []string
	runCountry     string
	runCountryCode string
	runCount       int
	runResume      string
	runOutputDir   string
	runTopK        int
	runMaxSkills   int
	runWorkers     int
	runAPIKey      string
	runSerpAPIKey  string
	runModel       string
	runUseBrowser  bool
	runFetchPages  bool
	runEvaluateFlag bool
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringSliceVarP(&runTitles, "titles", "t", nil, "Target job titles (repeat the flag or comma-separate)")
	runCommand.Flags().StringVarP(&runCountry, "country", "c", "", "Country to search in (e.g. \"Egypt\")")
	runCommand.Flags().StringVar(&runCountryCode, "country-code", "", "Two-letter country code for result localization (e.g. \"eg\")")
	runCommand.Flags().IntVarP(&runCount, "count", "n", 0, "Number of postings to collect")
	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to the candidate's resume (PDF, .txt, or .md; optional)")
	runCommand.Flags().StringVarP(&runOutputDir, "out", "o", "", "Directory that holds run directories")
	runCommand.Flags().IntVar(&runTopK, "top-k", 0, "Number of gap suggestions in the report")
	runCommand.Flags().IntVar(&runMaxSkills, "max-skills", 0, "Number of skills shown in the market table")
	runCommand.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent extraction calls")
	runCommand.Flags().StringVar(&runModel, "model", "", "Gemini model override for every pipeline stage")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	runCommand.Flags().BoolVar(&runFetchPages, "fetch-pages", false, "Download posting pages when the search API has no description")
	runCommand.Flags().BoolVar(&runEvaluateFlag, "evaluate", false, "Score the rendered report with an LLM judge")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API keys can be passed as flags, or read from env vars
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runSerpAPIKey, "serpapi-key", "", "SerpAPI key (optional, defaults to SERPAPI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("titles") {
		cfg.Titles = runTitles
	}
	if cmd.Flags().Changed("country") {
		cfg.Country = runCountry
	}
	if cmd.Flags().Changed("country-code") {
		cfg.CountryCode = runCountryCode
	}
	if cmd.Flags().Changed("count") {
		cfg.Count = runCount
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = runTopK
	}
	if cmd.Flags().Changed("max-skills") {
		cfg.MaxSkills = runMaxSkills
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("serpapi-key") {
		cfg.SerpAPIKey = runSerpAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("fetch-pages") {
		cfg.FetchPages = runFetchPages
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		OutputDir: config.DefaultOutputDir,
		Count:     config.DefaultCount,
		TopK:      config.DefaultTopK,
		MaxSkills: config.DefaultMaxSkills,
		Workers:   config.DefaultWorkers,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	params := config.RunParams{
		Titles:    cfg.Titles,
		Country:   cfg.Country,
		Count:     cfg.Count,
		TopK:      cfg.TopK,
		MaxSkills: cfg.MaxSkills,
		Workers:   cfg.Workers,
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid run parameters (set --titles and --country via flag or config): %w", err)
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.SerpAPIKey == "" {
		cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	}
	if cfg.SerpAPIKey == "" {
		return fmt.Errorf("SERPAPI_API_KEY environment variable or --serpapi-key flag is required")
	}

	opts := pipeline.RunOptions{
		Titles:      cfg.Titles,
		Country:     cfg.Country,
		CountryCode: cfg.CountryCode,
		Count:       cfg.Count,
		ResumePath:  cfg.Resume,
		OutputDir:   cfg.OutputDir,
		TopK:        cfg.TopK,
		MaxSkills:   cfg.MaxSkills,
		Workers:     cfg.Workers,
		APIKey:      cfg.APIKey,
		SerpAPIKey:  cfg.SerpAPIKey,
		Model:       cfg.Model,
		UseBrowser:  cfg.UseBrowser,
		FetchPages:  cfg.FetchPages,
		Evaluate:    runEvaluateFlag,
		Verbose:     cfg.Verbose,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
