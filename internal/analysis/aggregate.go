package analysis

import (
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// BuildMarketTables canonicalizes every processed posting's tokens, counts
// document frequency per category, and ranks the results. Tables come back
// uncapped; display truncation is the report renderer's concern. The
// document total is the number of processed postings, including those whose
// extraction yielded nothing.
func BuildMarketTables(items []types.PostingRequirements, canonical *types.CanonicalMap) types.MarketTables {
	skillsDocs := make([][]string, len(items))
	cloudDocs := make([][]string, len(items))
	certsDocs := make([][]string, len(items))

	for i, item := range items {
		skillsDocs[i] = canonical.Apply(NormalizeAll(item.TechnicalSkills))
		cloudDocs[i] = FoldCloudTokens(canonical.Apply(NormalizeAll(item.CloudPlatforms)))
		certsDocs[i] = canonical.Apply(NormalizeAll(item.Certifications))
	}

	return types.MarketTables{
		Skills:         Rank(CountDocuments(skillsDocs), 0),
		CloudPlatforms: RankCloud(CountDocuments(cloudDocs), 0),
		Certifications: Rank(CountDocuments(certsDocs), 0),
		TotalDocs:      len(items),
	}
}

// CollectTokens gathers every raw token from the processed postings and the
// candidate profile. This is the input set for the canonical map: built once
// per run, covering both sides of the gap comparison.
func CollectTokens(items []types.PostingRequirements, candidate *types.CandidateProfile) []string {
	var tokens []string
	for _, item := range items {
		tokens = append(tokens, item.AllTokens()...)
	}
	if candidate != nil {
		tokens = append(tokens, candidate.AllTokens()...)
	}
	return NormalizeAll(tokens)
}
