// Package artifacts provides the flat-file store for pipeline run outputs.
// Every run gets its own timestamped directory under the output root, and
// each stage saves its result as a named JSON or text artifact so later
// steps (and step subcommands) can resume from it.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseDir is the output root used when no directory is configured.
const DefaultBaseDir = "outputs"

// Well-known artifact names, one per pipeline stage.
const (
	FilePostings         = "postings.json"
	FileExtractions      = "extractions.json"
	FileCandidateProfile = "candidate_profile.json"
	FileCanonicalMap     = "canonical_map.json"
	FileMarketTables     = "market_tables.json"
	FileGap              = "gap.json"
	FileReport           = "report.json"
	FileReportMarkdown   = "report.md"
	FileReportHTML       = "report.html"
	FileEvaluation       = "evaluation.json"
)

// Store reads and writes artifacts inside a single run directory.
type Store struct {
	dir string
}

// NewRun creates a fresh run directory under baseDir and returns a store
// rooted there. Directories are named run_<timestamp>; an existing directory
// is never reused, so a previous run's artifacts are never overwritten.
func NewRun(baseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(baseDir, "run_"+stamp)
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create run directory: %w", err)
		}
		dir = filepath.Join(baseDir, fmt.Sprintf("run_%s_%d", stamp, i))
	}

	return &Store{dir: dir}, nil
}

// Open returns a store over an existing run directory.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open run directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("run path %s is not a directory", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the run directory this store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of a named artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// SaveJSON writes v as indented JSON under the given artifact name.
func (s *Store) SaveJSON(name string, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(s.Path(name), jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// SaveText writes a rendered text artifact (markdown, HTML).
func (s *Store) SaveText(name, text string) error {
	if err := os.WriteFile(s.Path(name), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// LoadJSON reads a named artifact into v.
func (s *Store) LoadJSON(name string, v interface{}) error {
	content, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

// LoadText reads a text artifact.
func (s *Store) LoadText(name string) (string, error) {
	content, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(content), nil
}

// Has reports whether a named artifact exists in the run directory.
func (s *Store) Has(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// MissingArtifactError reports artifacts a step needs but the run
// directory does not contain.
type MissingArtifactError struct {
	Dir     string
	Missing []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing artifacts in %s: %v", e.Dir, e.Missing)
}

// Require checks that every named artifact exists before a step runs.
func (s *Store) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingArtifactError{Dir: s.dir, Missing: missing}
	}
	return nil
}
