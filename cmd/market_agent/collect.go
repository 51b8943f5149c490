package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/collect"
	"github.com/jonathan/job-market-analyzer/internal/config"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/serpapi"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect job postings for target titles into a new run directory",
	Long:  "Search Google Jobs for the target titles, filter and deduplicate the results, resolve full descriptions, and write postings.json into a fresh run directory.",
	RunE:  runCollect,
}

var (
	collectTitles      []string
	collectCountry     string
	collectCountryCode string
	collectCount       int
	collectOutputDir   string
	collectSerpAPIKey  string
	collectFetchPages  bool
	collectUseBrowser  bool
	collectVerbose     bool
)

func init() {
	collectCmd.Flags().StringSliceVarP(&collectTitles, "titles", "t", nil, "Target job titles (repeat the flag or comma-separate)")
	collectCmd.Flags().StringVarP(&collectCountry, "country", "c", "", "Country to search in")
	collectCmd.Flags().StringVar(&collectCountryCode, "country-code", "", "Two-letter country code for result localization")
	collectCmd.Flags().IntVarP(&collectCount, "count", "n", config.DefaultCount, "Number of postings to collect")
	collectCmd.Flags().StringVarP(&collectOutputDir, "out", "o", config.DefaultOutputDir, "Directory that holds run directories")
	collectCmd.Flags().StringVar(&collectSerpAPIKey, "serpapi-key", "", "SerpAPI key (optional, defaults to SERPAPI_API_KEY env var)")
	collectCmd.Flags().BoolVar(&collectFetchPages, "fetch-pages", false, "Download posting pages when the search API has no description")
	collectCmd.Flags().BoolVar(&collectUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	collectCmd.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = collectCmd.MarkFlagRequired("titles")
	_ = collectCmd.MarkFlagRequired("country")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(_ *cobra.Command, _ []string) error {
	apiKey := collectSerpAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("SERPAPI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("SerpAPI key is required (set SERPAPI_API_KEY environment variable or use --serpapi-key flag)")
	}

	ctx := context.Background()

	collector := collect.New(serpapi.NewClient(apiKey), collect.Options{
		Titles:      collectTitles,
		Country:     collectCountry,
		CountryCode: collectCountryCode,
		Limit:       collectCount,
		FetchPages:  collectFetchPages,
		UseBrowser:  collectUseBrowser,
		Verbose:     collectVerbose,
	})

	batch, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect postings: %w", err)
	}

	store, err := artifacts.NewRun(collectOutputDir)
	if err != nil {
		return err
	}
	if err := store.SaveJSON(artifacts.FilePostings, batch); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FilePostings); err != nil {
		return err
	}

	if collectVerbose {
		observability.NewPrinter(os.Stdout).PrintPostingBatch(batch)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Collected %d of %d postings\n", batch.Collected(), batch.Requested)
	_, _ = fmt.Fprintf(os.Stdout, "Run directory: %s\n", store.Dir())
	_, _ = fmt.Fprintf(os.Stdout, "Postings: %s\n", store.Path(artifacts.FilePostings))

	return nil
}
