// Package pipeline provides the high-level orchestration for the market analysis process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-market-analyzer/internal/analysis"
	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/collect"
	"github.com/jonathan/job-market-analyzer/internal/evaluation"
	"github.com/jonathan/job-market-analyzer/internal/extraction"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/observability"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/jonathan/job-market-analyzer/internal/report"
	"github.com/jonathan/job-market-analyzer/internal/resume"
	"github.com/jonathan/job-market-analyzer/internal/serpapi"
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Titles      []string
	Country     string
	CountryCode string
	Count       int
	ResumePath  string
	OutputDir   string
	TopK        int
	MaxSkills   int
	Workers     int
	APIKey      string // Gemini
	SerpAPIKey  string
	Model       string // overrides every tier when set
	UseBrowser  bool
	FetchPages  bool
	Evaluate    bool
	Verbose     bool
	OnProgress  ProgressCallback

	// Source and Client override the real API clients; tests inject fakes
	// here. When nil they are built from the API keys above.
	Source collect.Source
	Client llm.Client
}

// RunResult summarizes a completed pipeline run
type RunResult struct {
	RunID      string
	Dir        string
	Report     *types.MarketReport
	Evaluation *types.ReportEvaluation
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}

// buildModelConfig applies the model override to every tier
func buildModelConfig(model string) *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	if model != "" {
		cfg = cfg.WithModel(llm.TierLite, model).
			WithModel(llm.TierStandard, model).
			WithModel(llm.TierAdvanced, model)
	}
	return cfg
}

// RunPipeline orchestrates the full market analysis pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*RunResult, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	topK := opts.TopK
	if topK == 0 {
		topK = 5
	}

	// Initialize the LLM client unless a fake was injected
	client := opts.Client
	if client == nil {
		if opts.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is missing")
		}
		created, err := llm.NewClient(ctx, buildModelConfig(opts.Model), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer created.Close()
		client = created
	}

	source := opts.Source
	if source == nil {
		if opts.SerpAPIKey == "" {
			return nil, fmt.Errorf("serpapi API key is missing")
		}
		source = serpapi.NewClient(opts.SerpAPIKey)
	}

	// Create the run directory before any network calls so partial runs
	// leave their artifacts behind
	store, err := artifacts.NewRun(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	meta := types.RunMetadata{
		RunID:     uuid.NewString(),
		Titles:    opts.Titles,
		Country:   opts.Country,
		Requested: opts.Count,
		StartedAt: time.Now().UTC(),
		Model:     client.GetModel(llm.TierStandard),
	}
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Run %s writing to %s\n", meta.RunID, store.Dir())
	}

	// Step 1: Collect job postings
	fmt.Printf("Step 1/7: Collecting job postings for %v in %s...\n", opts.Titles, opts.Country)
	collector := collect.New(source, collect.Options{
		Titles:      opts.Titles,
		Country:     opts.Country,
		CountryCode: opts.CountryCode,
		Limit:       opts.Count,
		FetchPages:  opts.FetchPages,
		UseBrowser:  opts.UseBrowser,
		Verbose:     opts.Verbose,
	})
	batch, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection failed: %w", err)
	}
	meta.Collected = batch.Collected()
	_ = store.SaveJSON(artifacts.FilePostings, batch)
	if opts.Verbose {
		printer.PrintPostingBatch(batch)
	}
	emitProgress(&opts, meta.RunID, steps.Collect, steps.CategoryCollection,
		fmt.Sprintf("Collected %d of %d postings", batch.Collected(), opts.Count), nil)
	if batch.Collected() == 0 {
		fmt.Printf("Warning: no postings matched the search; the report will be empty\n")
	}

	// Step 2: Extract requirements from each posting
	fmt.Printf("Step 2/7: Extracting requirements from %d postings...\n", batch.Collected())
	set, err := ExtractBatch(ctx, client, batch.Postings, workers, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	meta.Processed = len(set.Processed())
	meta.FailedExtractions = set.FailedCount()
	if set.FailedCount() > 0 {
		fmt.Printf("Warning: %d of %d postings failed extraction\n", set.FailedCount(), batch.Collected())
	}
	_ = store.SaveJSON(artifacts.FileExtractions, set)
	if opts.Verbose {
		printer.PrintExtractionSet(set)
	}
	emitProgress(&opts, meta.RunID, steps.Extract, steps.CategoryExtraction,
		fmt.Sprintf("Extracted requirements from %d postings", meta.Processed), nil)

	// Step 3: Parse the resume (optional; failure degrades to a market-only report)
	var candidate *types.CandidateProfile
	gapReason := ""
	if opts.ResumePath == "" {
		fmt.Printf("Step 3/7: No resume provided, skipping resume analysis.\n")
		gapReason = "no resume was provided"
	} else {
		fmt.Printf("Step 3/7: Parsing resume %s...\n", opts.ResumePath)
		candidate, gapReason = parseResume(ctx, client, opts.ResumePath)
		if candidate != nil {
			candidate.SourcePath = opts.ResumePath
			_ = store.SaveJSON(artifacts.FileCandidateProfile, candidate)
			emitProgress(&opts, meta.RunID, steps.ParseResume, steps.CategoryExtraction,
				fmt.Sprintf("Parsed resume with %d skill tokens", len(candidate.AllTokens())), nil)
		}
	}

	// Step 4: Canonicalize tokens across postings and resume
	fmt.Printf("Step 4/7: Grouping synonyms across %d postings...\n", meta.Processed)
	tokens := analysis.CollectTokens(set.Processed(), candidate)
	canonical, err := analysis.BuildCanonicalMap(ctx, analysis.NewLLMOracle(client), tokens)
	if err != nil {
		fmt.Printf("Warning: %v; continuing with identity mapping\n", err)
	}
	_ = store.SaveJSON(artifacts.FileCanonicalMap, canonical)
	emitProgress(&opts, meta.RunID, steps.Analyze, steps.CategoryAnalysis,
		fmt.Sprintf("Canonicalized %d distinct tokens", canonical.Len()), nil)

	// Step 5: Count and rank market demand
	fmt.Printf("Step 5/7: Ranking market demand...\n")
	tables := analysis.BuildMarketTables(set.Processed(), &canonical)
	_ = store.SaveJSON(artifacts.FileMarketTables, tables)
	if opts.Verbose {
		printer.PrintMarketTables(&tables)
	}
	emitProgress(&opts, meta.RunID, steps.Analyze, steps.CategoryAnalysis,
		fmt.Sprintf("Ranked %d skills across %d postings", len(tables.Skills.Items), tables.TotalDocs), &tables)

	// Step 6: Resume gap analysis
	var gap types.GapResult
	if candidate == nil {
		fmt.Printf("Step 6/7: Resume gap analysis unavailable (%s).\n", gapReason)
		gap = types.GapResult{TopK: topK, Unavailable: true, Reason: gapReason}
	} else {
		fmt.Printf("Step 6/7: Comparing resume against market demand...\n")
		gap = analysis.AnalyzeGap(tables, canonical.Apply(analysis.NormalizeAll(candidate.AllTokens())), topK)
	}
	_ = store.SaveJSON(artifacts.FileGap, gap)
	if opts.Verbose {
		printer.PrintGap(&gap)
	}
	emitProgress(&opts, meta.RunID, steps.Gap, steps.CategoryAnalysis,
		fmt.Sprintf("Found %d missing skills", len(gap.Missing)), &gap)

	// Step 7: Render the report
	fmt.Printf("Step 7/7: Rendering report...\n")
	meta.FinishedAt = time.Now().UTC()
	marketReport := &types.MarketReport{Metadata: meta, Tables: tables, Gap: &gap}
	renderOpts := report.Options{MaxSkills: opts.MaxSkills}

	markdown, err := report.RenderMarkdown(marketReport, renderOpts)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown report failed: %w", err)
	}
	html, err := report.RenderHTML(marketReport, renderOpts)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML report failed: %w", err)
	}

	if err := store.SaveJSON(artifacts.FileReport, marketReport); err != nil {
		return nil, err
	}
	if err := store.SaveText(artifacts.FileReportMarkdown, markdown); err != nil {
		return nil, err
	}
	if err := store.SaveText(artifacts.FileReportHTML, html); err != nil {
		return nil, err
	}
	emitProgress(&opts, meta.RunID, steps.Report, steps.CategoryReporting,
		fmt.Sprintf("Report written to %s", store.Path(artifacts.FileReportHTML)), nil)

	result := &RunResult{
		RunID:  meta.RunID,
		Dir:    store.Dir(),
		Report: marketReport,
	}

	// Optional: judge the rendered report
	if opts.Evaluate {
		fmt.Printf("Evaluating report quality...\n")
		eval, err := evaluation.Evaluate(ctx, client, html)
		if err != nil {
			// Evaluation failure - log warning and keep the finished report
			fmt.Printf("Warning: report evaluation failed: %v\n", err)
		} else {
			result.Evaluation = eval
			_ = store.SaveJSON(artifacts.FileEvaluation, eval)
			if opts.Verbose {
				printer.PrintEvaluation(eval)
			}
			emitProgress(&opts, meta.RunID, steps.Evaluate, steps.CategoryReporting,
				fmt.Sprintf("Report scored %.1f/10", eval.FinalScore), eval)
		}
	}

	fmt.Printf("Done! Report written to %s\n", store.Path(artifacts.FileReportHTML))
	return result, nil
}

// ExtractBatch runs per-posting extraction with bounded concurrency. Posting
// order is preserved. A posting whose extraction fails becomes a Failed item
// rather than aborting the run; only context cancellation stops the batch.
func ExtractBatch(ctx context.Context, client llm.Client, postings []types.Posting, workers int, verbose bool) (*types.ExtractionSet, error) {
	items := make([]types.PostingRequirements, len(postings))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range postings {
		g.Go(func() error {
			item, err := extraction.FromPosting(gCtx, client, postings[i])
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				if verbose {
					fmt.Printf("[VERBOSE] posting %s: %v\n", postings[i].ID, err)
				}
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.ExtractionSet{Items: items}, nil
}

// parseResume extracts the candidate profile from a resume file. Both return
// values are best-effort: a nil profile comes with the reason the gap stage
// must be skipped.
func parseResume(ctx context.Context, client llm.Client, path string) (*types.CandidateProfile, string) {
	text, err := resume.ExtractText(path)
	if err != nil {
		fmt.Printf("Warning: failed to read resume: %v\n", err)
		return nil, "the resume could not be read"
	}

	candidate, err := extraction.FromResume(ctx, client, text)
	if err != nil {
		fmt.Printf("Warning: failed to analyze resume: %v\n", err)
		return nil, "the resume could not be analyzed"
	}

	return candidate, ""
}
