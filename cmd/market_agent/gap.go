package main

import (
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/analysis"
	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/config"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare market demand against the candidate's profile",
	Long:  "Read market_tables.json and candidate_profile.json from a run directory, compute the top demanded skills the candidate is missing, and write gap.json. Without a candidate profile the gap is recorded as unavailable.",
	RunE:  runGap,
}

var (
	gapRunDir  string
	gapTopK    int
	gapVerbose bool
)

func init() {
	gapCmd.Flags().StringVar(&gapRunDir, "run", "", "Run directory produced by the collect step")
	gapCmd.Flags().IntVar(&gapTopK, "top-k", config.DefaultTopK, "Number of missing skills to suggest")
	gapCmd.Flags().BoolVarP(&gapVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = gapCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(gapCmd)
}

func runGap(_ *cobra.Command, _ []string) error {
	store, err := artifacts.Open(gapRunDir)
	if err != nil {
		return err
	}
	if err := steps.ValidateDependencies(store, steps.Gap); err != nil {
		return err
	}

	var tables types.MarketTables
	if err := store.LoadJSON(artifacts.FileMarketTables, &tables); err != nil {
		return err
	}

	topK := gapTopK
	if topK == 0 {
		topK = config.DefaultTopK
	}

	var gap types.GapResult
	if store.Has(artifacts.FileCandidateProfile) {
		var candidate types.CandidateProfile
		if err := store.LoadJSON(artifacts.FileCandidateProfile, &candidate); err != nil {
			return err
		}

		// Candidate tokens go through the same mapping as the market side
		// so that synonyms on either side still count as covered.
		var canonical types.CanonicalMap
		if store.Has(artifacts.FileCanonicalMap) {
			if err := store.LoadJSON(artifacts.FileCanonicalMap, &canonical); err != nil {
				return err
			}
		}

		covered := canonical.Apply(analysis.NormalizeAll(candidate.AllTokens()))
		gap = analysis.AnalyzeGap(tables, covered, topK)
	} else {
		gap = types.GapResult{TopK: topK, Unavailable: true, Reason: "no resume was analyzed"}
	}

	if err := store.SaveJSON(artifacts.FileGap, &gap); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileGap); err != nil {
		return err
	}

	if gapVerbose {
		observability.NewPrinter(os.Stdout).PrintGap(&gap)
	}

	switch {
	case gap.Unavailable:
		_, _ = fmt.Fprintf(os.Stdout, "Gap analysis unavailable: %s\n", gap.Reason)
	case len(gap.Missing) == 0:
		_, _ = fmt.Fprintln(os.Stdout, "The resume covers the top market demands")
	default:
		_, _ = fmt.Fprintf(os.Stdout, "Found %d skills to learn next\n", len(gap.Missing))
	}
	_, _ = fmt.Fprintf(os.Stdout, "Gap: %s\n", store.Path(artifacts.FileGap))

	return nil
}
