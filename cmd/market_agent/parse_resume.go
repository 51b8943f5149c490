package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/extraction"
	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/resume"
	"github.com/spf13/cobra"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract the candidate's skills from a resume file",
	Long:  "Read a resume (PDF, TXT, or MD), extract the candidate's skills, cloud platforms, and certifications with the LLM, and write candidate_profile.json into the run directory.",
	RunE:  runParseResume,
}

var (
	parseResumePath   string
	parseResumeRunDir string
	parseResumeAPIKey string
	parseResumeModel  string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumePath, "resume", "r", "", "Path to the resume file")
	parseResumeCmd.Flags().StringVar(&parseResumeRunDir, "run", "", "Run directory produced by the collect step")
	parseResumeCmd.Flags().StringVar(&parseResumeAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	parseResumeCmd.Flags().StringVar(&parseResumeModel, "model", "", "Override the Gemini model for every tier")

	_ = parseResumeCmd.MarkFlagRequired("resume")
	_ = parseResumeCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	apiKey := parseResumeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	store, err := artifacts.Open(parseResumeRunDir)
	if err != nil {
		return err
	}

	text, err := resume.ExtractText(parseResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, buildModelConfig(parseResumeModel), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	profile, err := extraction.FromResume(ctx, client, text)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	profile.SourcePath = parseResumePath

	if err := store.SaveJSON(artifacts.FileCandidateProfile, profile); err != nil {
		return err
	}
	if err := validateArtifact(store, artifacts.FileCandidateProfile); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Parsed resume: %d skills, %d cloud platforms, %d certifications\n",
		len(profile.TechnicalSkills), len(profile.CloudPlatforms), len(profile.Certifications))
	_, _ = fmt.Fprintf(os.Stdout, "Candidate profile: %s\n", store.Path(artifacts.FileCandidateProfile))

	return nil
}
