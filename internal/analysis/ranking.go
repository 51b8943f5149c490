package analysis

import (
	"math"
	"sort"

	"github.com/jonathan/job-market-analyzer/internal/types"
)

// CloudVocabulary is the closed set of cloud-platform tokens the analyzer
// reports on. The cloud table never contains anything else.
var CloudVocabulary = []string{"aws", "azure", "gcp"}

// cloudAliases folds spelled-out platform names onto the vocabulary.
// Canonicalization usually handles these, so this is a second net for runs
// where the synonym oracle fell back to identity.
var cloudAliases = map[string]string{
	"amazon web services":   "aws",
	"amazon aws":            "aws",
	"aws cloud":             "aws",
	"microsoft azure":       "azure",
	"azure cloud":           "azure",
	"google cloud":          "gcp",
	"google cloud platform": "gcp",
}

// FoldCloudToken maps a normalized token onto the cloud vocabulary.
// Tokens outside the vocabulary fold to the empty string.
func FoldCloudToken(token string) string {
	if platform, ok := cloudAliases[token]; ok {
		return platform
	}
	for _, platform := range CloudVocabulary {
		if token == platform {
			return platform
		}
	}
	return ""
}

// FoldCloudTokens folds every token onto the vocabulary, dropping
// everything else and deduplicating. Used per document before counting so
// a posting naming both "AWS" and "Amazon Web Services" counts once.
func FoldCloudTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(CloudVocabulary))
	for _, token := range tokens {
		platform := FoldCloudToken(token)
		if platform == "" || seen[platform] {
			continue
		}
		seen[platform] = true
		out = append(out, platform)
	}
	return out
}

// Percent returns the share of documents mentioning a token, as a
// percentage rounded to one decimal. Zero documents yield zero.
func Percent(count, totalDocs int) float64 {
	if totalDocs <= 0 {
		return 0
	}
	return math.Round(1000*float64(count)/float64(totalDocs)) / 10
}

// Rank sorts a frequency table by descending document count, breaking ties
// lexicographically, and truncates to topN entries. topN <= 0 keeps all.
func Rank(table types.FrequencyTable, topN int) types.RankedTable {
	items := make([]types.RankedItem, 0, len(table.Counts))
	for token, count := range table.Counts {
		items = append(items, types.RankedItem{
			Token:   token,
			Count:   count,
			Percent: Percent(count, table.TotalDocs),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Token < items[j].Token
	})

	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	return types.RankedTable{Items: items, TotalDocs: table.TotalDocs}
}

// RankCloud ranks a table restricted to the cloud vocabulary. Alias counts
// merge by maximum rather than sum: the per-document fold already merged
// duplicates on the normal path, and a sum could push a count past the
// document total when it did not.
func RankCloud(table types.FrequencyTable, topN int) types.RankedTable {
	folded := types.FrequencyTable{
		Counts:    make(map[string]int, len(CloudVocabulary)),
		TotalDocs: table.TotalDocs,
	}
	for token, count := range table.Counts {
		platform := FoldCloudToken(token)
		if platform == "" {
			continue
		}
		if count > folded.Counts[platform] {
			folded.Counts[platform] = count
		}
	}
	return Rank(folded, topN)
}
