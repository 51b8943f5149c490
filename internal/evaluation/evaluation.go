// Package evaluation scores a rendered HTML report with an LLM judge. The
// judge grades six criteria from 1 to 10 and adds an overall score with
// free-form comments, giving a cheap quality signal per run.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/prompts"
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// JudgeError represents a failure to obtain or parse a judgment
type JudgeError struct {
	Message string
	Cause   error
}

func (e *JudgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation error: %s", e.Message)
}

func (e *JudgeError) Unwrap() error {
	return e.Cause
}

// rawEvaluation tolerates fractional scores so a judge answering 8.5 does
// not fail the parse. Scores are rounded and clamped afterwards.
type rawEvaluation struct {
	Relevance    float64 `json:"relevance"`
	Accuracy     float64 `json:"accuracy"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
	VisualAppeal float64 `json:"visual_appeal"`
	Insights     float64 `json:"insights"`
	FinalScore   float64 `json:"final_score"`
	Comments     string  `json:"comments"`
}

// Evaluate asks the advanced-tier model to judge a rendered HTML report.
func Evaluate(ctx context.Context, client llm.Client, reportHTML string) (*types.ReportEvaluation, error) {
	if strings.TrimSpace(reportHTML) == "" {
		return nil, &JudgeError{Message: "report HTML is empty"}
	}

	template := prompts.MustGet("evaluation.json", "judge-report")
	prompt := prompts.Format(template, map[string]string{"Report": reportHTML})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &JudgeError{Message: "judge call failed", Cause: err}
	}

	var raw rawEvaluation
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &raw); err != nil {
		return nil, &JudgeError{Message: "judge returned an unparseable payload", Cause: err}
	}

	result := &types.ReportEvaluation{
		Relevance:    clampScore(raw.Relevance),
		Accuracy:     clampScore(raw.Accuracy),
		Completeness: clampScore(raw.Completeness),
		Clarity:      clampScore(raw.Clarity),
		VisualAppeal: clampScore(raw.VisualAppeal),
		Insights:     clampScore(raw.Insights),
		Comments:     strings.TrimSpace(raw.Comments),
	}
	result.FinalScore = finalScore(raw.FinalScore, result)

	return result, nil
}

// clampScore rounds a criterion score onto the 1-10 scale.
func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// finalScore keeps the judge's overall score when it gave one, otherwise
// averages the six criteria. Either way the result lands in [1, 10] with
// one decimal.
func finalScore(reported float64, e *types.ReportEvaluation) float64 {
	score := reported
	if score <= 0 {
		sum := e.Relevance + e.Accuracy + e.Completeness + e.Clarity + e.VisualAppeal + e.Insights
		score = float64(sum) / 6
	}
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return math.Round(score*10) / 10
}
