// Package collect gathers job postings from the external search engine and
// shapes them into the batch the rest of the pipeline consumes.
package collect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-market-analyzer/internal/serpapi"
	"github.com/jonathan/job-market-analyzer/internal/types"
)

const (
	// DefaultLimit is the number of postings to collect when unspecified.
	DefaultLimit = 20
	// DefaultDelay is the politeness pause between search API calls.
	DefaultDelay = 200 * time.Millisecond
)

// Error represents a failure assembling the posting batch.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("collect error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("collect error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Source is the slice of the search API client the collector depends on.
type Source interface {
	SearchJobs(ctx context.Context, query string, params serpapi.SearchParams) ([]serpapi.JobResult, error)
	FetchListing(ctx context.Context, jobID string) (*serpapi.ListingResponse, error)
}

// Options configures a collection run.
type Options struct {
	Titles  []string
	Country string
	// CountryCode is an optional two-letter code passed through to the
	// search engine to localize results.
	CountryCode string
	Limit       int
	// SkipListings disables the per-job listing fetch that retrieves full
	// descriptions, leaving only the search snippet.
	SkipListings bool
	// FetchPages enables downloading a posting's own page when the search
	// API carries no description at all.
	FetchPages bool
	// UseBrowser renders JavaScript-heavy job boards in a headless browser
	// during page downloads.
	UseBrowser bool
	Delay      time.Duration
	Verbose    bool
}

// Collector gathers postings for a set of target titles.
type Collector struct {
	source Source
	opts   Options
}

// New creates a Collector. A zero Limit falls back to DefaultLimit and a
// zero Delay to DefaultDelay.
func New(source Source, opts Options) *Collector {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	return &Collector{source: source, opts: opts}
}

// Collect runs one search per target title, filters and dedupes the results,
// and resolves a description for every posting it keeps. Individual title
// searches may fail without failing the run; fewer postings than requested
// is a valid outcome.
func (c *Collector) Collect(ctx context.Context) (*types.PostingBatch, error) {
	if len(c.opts.Titles) == 0 {
		return nil, &Error{Message: "no target titles provided"}
	}

	batch := &types.PostingBatch{
		Titles:    c.opts.Titles,
		Country:   c.opts.Country,
		Requested: c.opts.Limit,
	}
	seen := make(map[string]bool)

	for _, title := range c.opts.Titles {
		query := fmt.Sprintf("%s jobs in %s", title, c.opts.Country)
		if c.opts.Verbose {
			fmt.Printf("Searching: %s\n", query)
		}

		results, err := c.source.SearchJobs(ctx, query, serpapi.SearchParams{CountryCode: c.opts.CountryCode})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Printf("Warning: search for %q failed: %v\n", title, err)
			continue
		}

		for i := range results {
			job := &results[i]
			if !TitleSimilar(job.Title, c.opts.Titles) {
				continue
			}
			key := dedupeKey(job.Title, job.CompanyName, job.Location)
			if seen[key] {
				continue
			}
			seen[key] = true

			desc, src, err := c.describe(ctx, job)
			if err != nil {
				return nil, err
			}

			batch.Postings = append(batch.Postings, types.Posting{
				ID:          postingID(job),
				Title:       job.Title,
				Company:     job.CompanyName,
				Location:    job.Location,
				Via:         job.Via,
				Description: desc,
				Link:        job.BestLink(),
				Source:      src,
			})

			if batch.Collected() >= c.opts.Limit {
				return batch, nil
			}
		}

		if err := sleepCtx(ctx, c.opts.Delay); err != nil {
			return nil, err
		}
	}

	return batch, nil
}

// describe resolves a posting's description text, best source first: the
// full listing detail, then the search snippet, then the posting's own page.
// Returns the text and which source produced it.
func (c *Collector) describe(ctx context.Context, job *serpapi.JobResult) (string, string, error) {
	if !c.opts.SkipListings && job.JobID != "" {
		listing, err := c.source.FetchListing(ctx, job.JobID)
		if serr := sleepCtx(ctx, c.opts.Delay); serr != nil {
			return "", "", serr
		}
		if err != nil {
			fmt.Printf("Warning: listing fetch for %q at %q failed: %v\n", job.Title, job.CompanyName, err)
		} else if desc := strings.TrimSpace(listing.BestDescription()); desc != "" {
			return desc, types.PostingSourceListing, nil
		}
	}

	if desc := strings.TrimSpace(job.Description); desc != "" {
		return desc, types.PostingSourceSearch, nil
	}

	if c.opts.FetchPages {
		if link := job.BestLink(); link != "" {
			text, err := PostingPageText(ctx, link, PageOptions{
				UseBrowser: c.opts.UseBrowser,
				Verbose:    c.opts.Verbose,
			})
			if err != nil {
				if ctx.Err() != nil {
					return "", "", ctx.Err()
				}
				fmt.Printf("Warning: page fetch for %q failed: %v\n", link, err)
			} else if desc := strings.TrimSpace(text); desc != "" {
				return desc, types.PostingSourcePage, nil
			}
		}
	}

	return "", "", nil
}

// postingID picks a stable identifier for a posting, falling back to a
// random one when the search engine did not assign a job_id.
func postingID(job *serpapi.JobResult) string {
	if job.JobID != "" {
		return job.JobID
	}
	return uuid.NewString()
}

// sleepCtx waits for the politeness delay unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
