package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

// SynonymOracle groups tokens that name the same skill, tool, platform, or
// certification. Implementations return a partial mapping from token to its
// canonical form; tokens left out of the mapping are their own canonical
// form. The LLM-backed implementation lives in oracle.go, tests use fakes.
type SynonymOracle interface {
	MapSynonyms(ctx context.Context, tokens []string) (map[string]string, error)
}

// BuildCanonicalMap consults the oracle once over the full token set and
// returns a map that is total over its input: every input token has an
// entry, unknown lookups resolve to themselves. Oracle entries are dropped
// when their key is not an input token or their value does not normalize to
// an input token, so the map can never introduce labels the corpus did not
// contain. Chains are resolved to fixpoints and cycles collapse to identity,
// which makes applying the map idempotent.
//
// On oracle failure the identity map is returned together with the error so
// the caller can warn and continue.
func BuildCanonicalMap(ctx context.Context, oracle SynonymOracle, tokens []string) (types.CanonicalMap, error) {
	inputs := NormalizeAll(tokens)
	sort.Strings(inputs)

	mapping := make(map[string]string, len(inputs))
	inputSet := make(map[string]bool, len(inputs))
	for _, token := range inputs {
		mapping[token] = token
		inputSet[token] = true
	}
	result := types.CanonicalMap{Mapping: mapping}

	if len(inputs) == 0 || oracle == nil {
		return result, nil
	}

	raw, err := oracle.MapSynonyms(ctx, inputs)
	if err != nil {
		return result, fmt.Errorf("synonym oracle failed: %w", err)
	}

	for key, value := range raw {
		key = Normalize(key)
		value = Normalize(value)
		if !inputSet[key] || value == "" || !inputSet[value] {
			continue
		}
		mapping[key] = value
	}

	for _, token := range inputs {
		mapping[token] = resolveFixpoint(mapping, token)
	}

	return result, nil
}

// resolveFixpoint follows mapping chains until a token maps to itself.
// A cycle yields the starting token, breaking the cycle at a deterministic
// member because callers iterate tokens in sorted order.
func resolveFixpoint(mapping map[string]string, token string) string {
	seen := map[string]bool{token: true}
	current := token
	for {
		next := mapping[current]
		if next == current {
			return current
		}
		if seen[next] {
			return token
		}
		seen[next] = true
		current = next
	}
}
