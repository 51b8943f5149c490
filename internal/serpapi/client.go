// Package serpapi provides a typed client for the SerpAPI Google Jobs
// endpoints: the google_jobs search engine and the google_jobs_listing
// detail engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the SerpAPI search endpoint
const DefaultBaseURL = "https://serpapi.com/search.json"

// noResultsMarker appears in SerpAPI's error field when Google simply had
// nothing for the query. That is an empty result, not a failure.
const noResultsMarker = "hasn't returned any results"

// Error represents a failed SerpAPI request
type Error struct {
	Engine  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("serpapi %s: %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("serpapi %s: %s", e.Engine, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() Options {
	return Options{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Client calls SerpAPI over plain HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client with default options
func NewClient(apiKey string) *Client {
	return NewClientWithOptions(apiKey, DefaultOptions())
}

// NewClientWithOptions creates a client with custom options.
// The base URL override exists for tests.
func NewClientWithOptions(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		apiKey:     apiKey,
	}
}

// SearchParams tunes a google_jobs search
type SearchParams struct {
	CountryCode  string // gl parameter, e.g. "de"
	Language     string // hl parameter, defaults to "en"
	GoogleDomain string // defaults to "google.com"
}

// SearchJobs runs one google_jobs query (e.g. "data engineer jobs in
// Germany") and returns the result page's job entries. A query Google has
// no results for returns an empty slice, not an error.
func (c *Client) SearchJobs(ctx context.Context, query string, params SearchParams) ([]JobResult, error) {
	values := url.Values{}
	values.Set("engine", "google_jobs")
	values.Set("q", query)
	values.Set("google_domain", params.GoogleDomain)
	if params.GoogleDomain == "" {
		values.Set("google_domain", "google.com")
	}
	values.Set("hl", params.Language)
	if params.Language == "" {
		values.Set("hl", "en")
	}
	if params.CountryCode != "" {
		values.Set("gl", strings.ToLower(params.CountryCode))
	}

	var resp SearchResponse
	if err := c.get(ctx, "google_jobs", values, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		if strings.Contains(strings.ToLower(resp.Error), noResultsMarker) {
			return nil, nil
		}
		return nil, &Error{Engine: "google_jobs", Message: resp.Error}
	}
	return resp.JobsResults, nil
}

// FetchListing fetches the full listing (including the complete job
// description) for one job_id from the search results.
func (c *Client) FetchListing(ctx context.Context, jobID string) (*ListingResponse, error) {
	values := url.Values{}
	values.Set("engine", "google_jobs_listing")
	values.Set("q", jobID)

	var resp ListingResponse
	if err := c.get(ctx, "google_jobs_listing", values, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &Error{Engine: "google_jobs_listing", Message: resp.Error}
	}
	return &resp, nil
}

// get issues the request with the API key attached and decodes the JSON body.
func (c *Client) get(ctx context.Context, engine string, values url.Values, out any) error {
	values.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return &Error{Engine: engine, Message: "failed to build request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Engine: engine, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &Error{Engine: engine, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Engine: engine, Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Engine: engine, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
