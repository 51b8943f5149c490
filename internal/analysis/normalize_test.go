package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Python", expected: "python"},
		{name: "trims whitespace", input: "  SQL  ", expected: "sql"},
		{name: "collapses internal runs", input: "machine   \t learning", expected: "machine learning"},
		{name: "trims edge punctuation", input: "(Kubernetes),", expected: "kubernetes"},
		{name: "keeps internal slash", input: "CI/CD", expected: "ci/cd"},
		{name: "keeps internal plus", input: "C++", expected: "c++"},
		{name: "keeps internal hyphen", input: "scikit-learn", expected: "scikit-learn"},
		{name: "keeps internal dot", input: "Node.js", expected: "node.js"},
		{name: "empty input", input: "", expected: ""},
		{name: "punctuation only", input: " ?!., ", expected: ""},
		{name: "mixed noise", input: "  \"Apache Spark\"! ", expected: "apache spark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"  Machine   Learning ", "(AWS)", "ci/cd", "C++", "node.js"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalizing %q a second time changed it", input)
	}
}

func TestNormalizeAll_DropsEmptiesAndDeduplicates(t *testing.T) {
	got := NormalizeAll([]string{"Python", "  python ", "", "SQL", "?!", "PYTHON", "sql"})
	assert.Equal(t, []string{"python", "sql"}, got)
}

func TestNormalizeAll_PreservesFirstSeenOrder(t *testing.T) {
	got := NormalizeAll([]string{"Docker", "Airflow", "docker", "Spark"})
	assert.Equal(t, []string{"docker", "airflow", "spark"}, got)
}

func TestNormalizeAll_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeAll(nil))
	assert.Empty(t, NormalizeAll([]string{}))
}
