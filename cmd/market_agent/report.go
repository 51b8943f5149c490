package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/config"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/report"
	"github.com/jonathan/job-market-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the market report as Markdown and HTML",
	Long:  "Read market_tables.json and gap.json from a run directory and write report.json, report.md, and report.html.",
	RunE:  runReport,
}

var (
	reportRunDir    string
	reportMaxSkills int
)

func init() {
	reportCmd.Flags().StringVar(&reportRunDir, "run", "", "Run directory produced by the collect step")
	reportCmd.Flags().IntVar(&reportMaxSkills, "max-skills", config.DefaultMaxSkills, "Maximum number of skills listed in the report")

	_ = reportCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	store, err := artifacts.Open(reportRunDir)
	if err != nil {
		return err
	}
	if err := steps.ValidateDependencies(store, steps.Report); err != nil {
		return err
	}

	var tables types.MarketTables
	if err := store.LoadJSON(artifacts.FileMarketTables, &tables); err != nil {
		return err
	}

	var gap *types.GapResult
	if store.Has(artifacts.FileGap) {
		gap = &types.GapResult{}
		if err := store.LoadJSON(artifacts.FileGap, gap); err != nil {
			return err
		}
	}

	marketReport := &types.MarketReport{
		Metadata: rebuildMetadata(store),
		Tables:   tables,
		Gap:      gap,
	}

	renderOpts := report.Options{MaxSkills: reportMaxSkills}
	markdown, err := report.RenderMarkdown(marketReport, renderOpts)
	if err != nil {
		return fmt.Errorf("failed to render markdown report: %w", err)
	}
	html, err := report.RenderHTML(marketReport, renderOpts)
	if err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	if err := store.SaveJSON(artifacts.FileReport, marketReport); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileReport); err != nil {
		return err
	}
	if err := store.SaveText(artifacts.FileReportMarkdown, markdown); err != nil {
		return err
	}
	if err := store.SaveText(artifacts.FileReportHTML, html); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Report written to %s\n", store.Path(artifacts.FileReportMarkdown))
	_, _ = fmt.Fprintf(os.Stdout, "HTML report written to %s\n", store.Path(artifacts.FileReportHTML))

	return nil
}

// rebuildMetadata recovers what it can of the run metadata from the
// artifacts on disk. A run executed step by step has no in-memory metadata
// to carry over, so titles and counts come from the collection and
// extraction artifacts when those exist.
func rebuildMetadata(store *artifacts.Store) types.RunMetadata {
	meta := types.RunMetadata{RunID: filepath.Base(store.Dir())}

	var batch types.PostingBatch
	if store.Has(artifacts.FilePostings) && store.LoadJSON(artifacts.FilePostings, &batch) == nil {
		meta.Titles = batch.Titles
		meta.Country = batch.Country
		meta.Requested = batch.Requested
		meta.Collected = batch.Collected()
	}

	var set types.ExtractionSet
	if store.Has(artifacts.FileExtractions) && store.LoadJSON(artifacts.FileExtractions, &set) == nil {
		meta.Processed = len(set.Processed())
		meta.FailedExtractions = set.FailedCount()
	}

	return meta
}
