// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither the config file nor CLI flags set a value.
const (
	DefaultOutputDir = "outputs"
	DefaultCount     = 20
	DefaultTopK      = 5
	DefaultMaxSkills = 20
	DefaultWorkers   = 4
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Search
	Titles      []string `json:"titles,omitempty"`       // Job titles to search for
	Country     string   `json:"country,omitempty"`      // Country to search in (e.g. "Egypt")
	CountryCode string   `json:"country_code,omitempty"` // Two-letter code for result localization (e.g. "eg")
	Count       int      `json:"count,omitempty"`        // Number of postings to collect

	// Paths
	Resume    string `json:"resume,omitempty"`     // Path to the candidate's resume (PDF or text)
	OutputDir string `json:"output_dir,omitempty"` // Directory that holds run directories

	// Limits
	TopK      int `json:"top_k,omitempty"`      // Number of gap suggestions in the report
	MaxSkills int `json:"max_skills,omitempty"` // Number of skills shown in the market table
	Workers   int `json:"workers,omitempty"`    // Concurrent extraction calls

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key
	SerpAPIKey string `json:"serpapi_key,omitempty"` // SerpAPI key
	Model      string `json:"model,omitempty"`       // Gemini model override
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	FetchPages bool   `json:"fetch_pages,omitempty"` // Download posting pages lacking descriptions
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.Count < 0 {
		return fmt.Errorf("config error: 'count' must be non-negative")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.MaxSkills < 0 {
		return fmt.Errorf("config error: 'max_skills' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if len(result.Titles) == 0 {
		result.Titles = defaults.Titles
	}
	if result.Country == "" {
		result.Country = defaults.Country
	}
	if result.CountryCode == "" {
		result.CountryCode = defaults.CountryCode
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SerpAPIKey == "" {
		result.SerpAPIKey = defaults.SerpAPIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Int fields: use default if zero
	if result.Count == 0 {
		result.Count = defaults.Count
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.MaxSkills == 0 {
		result.MaxSkills = defaults.MaxSkills
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RunParams represents the validated inputs for a pipeline run after the
// config file, CLI flags, and defaults have been merged.
type RunParams struct {
	Titles    []string `validate:"required,min=1,dive,required"`
	Country   string   `validate:"required"`
	Count     int      `validate:"gte=1"`
	TopK      int      `validate:"gte=1"`
	MaxSkills int      `validate:"gte=1"`
	Workers   int      `validate:"gte=1"`
}

// Validate validates the RunParams using the validator.
func (p *RunParams) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
