// Package types provides type definitions for structured data used throughout the job-market analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CanonicalMap represents the synonym mapping built once per run over every
// distinct normalized token. Lookups outside the mapping resolve to the
// token itself, which makes the map total over any input.
type CanonicalMap struct {
	Mapping map[string]string `json:"mapping"`
}

// Resolve returns the canonical form of token, or token itself when no
// mapping entry exists
func (m *CanonicalMap) Resolve(token string) string {
	if m == nil || m.Mapping == nil {
		return token
	}
	if canonical, ok := m.Mapping[token]; ok && canonical != "" {
		return canonical
	}
	return token
}

// Apply resolves every token and drops duplicates, preserving first-seen
// order. Applying the result a second time yields the same slice as long as
// the mapping's values are fixpoints, which the builder guarantees.
func (m *CanonicalMap) Apply(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		canonical := m.Resolve(token)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

// Len returns the number of mapping entries
func (m *CanonicalMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Mapping)
}
