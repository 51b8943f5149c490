package analysis

import (
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// AnalyzeGap compares combined market demand against the candidate's
// canonical token set and returns the strongest missing tokens. The three
// category tables merge into one demand list (a token appearing in several
// categories keeps its highest count), re-ranked by descending count with
// lexicographic ties. Candidate tokens never appear in the result. topK <= 0
// keeps every missing token.
//
// An empty candidate set produces the full top-K flagged low-confidence:
// the caller could not tell what the candidate knows, so the suggestions
// are generic market demand rather than a personal gap.
func AnalyzeGap(tables types.MarketTables, candidate []string, topK int) types.GapResult {
	combined := make(map[string]int)
	for _, table := range []types.RankedTable{tables.Skills, tables.CloudPlatforms, tables.Certifications} {
		for _, item := range table.Items {
			if item.Count > combined[item.Token] {
				combined[item.Token] = item.Count
			}
		}
	}

	have := make(map[string]bool, len(candidate))
	for _, token := range NormalizeAll(candidate) {
		have[token] = true
		// A candidate who lists "Amazon Web Services" is not missing "aws"
		if platform := FoldCloudToken(token); platform != "" {
			have[platform] = true
		}
	}

	ranked := Rank(types.FrequencyTable{Counts: combined, TotalDocs: tables.TotalDocs}, 0)

	missing := make([]types.RankedItem, 0, len(ranked.Items))
	for _, item := range ranked.Items {
		if have[item.Token] {
			continue
		}
		missing = append(missing, item)
		if topK > 0 && len(missing) == topK {
			break
		}
	}

	return types.GapResult{
		Missing:       missing,
		TopK:          topK,
		LowConfidence: len(have) == 0,
	}
}
