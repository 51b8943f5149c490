package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/artifacts"
	"github.com/jonathan/job-market-analyzer/internal/pipeline/steps"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which pipeline steps a run has completed",
	Long:  "Inspect a run directory and report completed steps, steps whose dependencies are satisfied, and steps still blocked on missing artifacts.",
	RunE:  runStatus,
}

var statusRunDir string

func init() {
	statusCmd.Flags().StringVar(&statusRunDir, "run", "", "Run directory produced by the collect step")

	_ = statusCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	store, err := artifacts.Open(statusRunDir)
	if err != nil {
		return err
	}

	var completed []string
	for _, name := range steps.Order {
		if steps.Completed(store, name) {
			completed = append(completed, name)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Run: %s\n", store.Dir())
	_, _ = fmt.Fprintf(os.Stdout, "Completed: %s\n", formatStepList(completed))
	_, _ = fmt.Fprintf(os.Stdout, "Available: %s\n", formatStepList(steps.GetAvailableSteps(store)))
	_, _ = fmt.Fprintf(os.Stdout, "Blocked:   %s\n", formatStepList(steps.GetBlockedSteps(store)))

	return nil
}

func formatStepList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
