package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-market-analyzer/internal/llm"
	"github.com/jonathan/job-market-analyzer/internal/prompts"
)

// LLMOracle implements SynonymOracle on top of an LLM client.
type LLMOracle struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewLLMOracle creates an oracle using the standard model tier
func NewLLMOracle(client llm.Client) *LLMOracle {
	return &LLMOracle{Client: client, Tier: llm.TierStandard}
}

// MapSynonyms asks the model to group the tokens and returns its raw
// mapping. Validation against the input set happens in BuildCanonicalMap,
// not here.
func (o *LLMOracle) MapSynonyms(ctx context.Context, tokens []string) (map[string]string, error) {
	if len(tokens) == 0 {
		return map[string]string{}, nil
	}

	tier := o.Tier
	if tier == "" {
		tier = llm.TierStandard
	}

	jsonResp, err := o.Client.GenerateJSON(ctx, buildSynonymPrompt(tokens), tier)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse synonym response: %w (content: %s)", err, jsonResp)
	}
	return mapping, nil
}

// buildSynonymPrompt constructs the grouping prompt for the token set.
func buildSynonymPrompt(tokens []string) string {
	template := prompts.MustGet("canonical.json", "map-synonyms")
	return prompts.Format(template, map[string]string{
		"Tokens": "- " + strings.Join(tokens, "\n- "),
	})
}
