package analysis

import (
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// CountDocuments builds a document-frequency table from per-document token
// lists. Each document contributes at most one count per distinct normalized
// token, however often the document repeats it. Documents with no usable
// tokens still count toward the total.
func CountDocuments(docs [][]string) types.FrequencyTable {
	table := types.FrequencyTable{
		Counts:    make(map[string]int),
		TotalDocs: len(docs),
	}
	for _, doc := range docs {
		for _, token := range NormalizeAll(doc) {
			table.Counts[token]++
		}
	}
	return table
}
