package collect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-market-analyzer/internal/serpapi"
	"github.com/jonathan/job-market-analyzer/internal/types"
)

// fakeSource implements Source with canned responses keyed by query and
// job ID, recording every call for assertions.
type fakeSource struct {
	resultsByQuery map[string][]serpapi.JobResult
	searchErrs     map[string]error
	listings       map[string]*serpapi.ListingResponse
	listingErrs    map[string]error

	searchQueries []string
	listingIDs    []string
}

func (f *fakeSource) SearchJobs(_ context.Context, query string, _ serpapi.SearchParams) ([]serpapi.JobResult, error) {
	f.searchQueries = append(f.searchQueries, query)
	if err := f.searchErrs[query]; err != nil {
		return nil, err
	}
	return f.resultsByQuery[query], nil
}

func (f *fakeSource) FetchListing(_ context.Context, jobID string) (*serpapi.ListingResponse, error) {
	f.listingIDs = append(f.listingIDs, jobID)
	if err := f.listingErrs[jobID]; err != nil {
		return nil, err
	}
	if listing, ok := f.listings[jobID]; ok {
		return listing, nil
	}
	return &serpapi.ListingResponse{}, nil
}

func testOptions(titles ...string) Options {
	return Options{
		Titles:  titles,
		Country: "Germany",
		Limit:   10,
		Delay:   time.Millisecond,
	}
}

func TestCollector_Collect_QueryFormat(t *testing.T) {
	source := &fakeSource{}
	collector := New(source, testOptions("Data Engineer", "ML Engineer"))

	_, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Data Engineer jobs in Germany",
		"ML Engineer jobs in Germany",
	}, source.searchQueries)
}

func TestCollector_Collect_FiltersAndDedupes(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Senior Data Engineer", CompanyName: "Acme", Location: "Berlin", Description: "Build pipelines."},
				{Title: "Marketing Manager", CompanyName: "Acme", Location: "Berlin", Description: "Run campaigns."},
				{Title: "SENIOR DATA ENGINEER", CompanyName: "acme", Location: "berlin", Description: "Duplicate entry."},
			},
		},
	}

	opts := testOptions("Data Engineer")
	opts.SkipListings = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, batch.Collected())
	posting := batch.Postings[0]
	assert.Equal(t, "Senior Data Engineer", posting.Title)
	assert.Equal(t, "Build pipelines.", posting.Description)
	assert.Equal(t, types.PostingSourceSearch, posting.Source)
	assert.NotEmpty(t, posting.ID)
}

func TestCollector_Collect_PrefersListingDescription(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Data Engineer", CompanyName: "Acme", Location: "Berlin", JobID: "job-1", Description: "Short snippet."},
			},
		},
		listings: map[string]*serpapi.ListingResponse{
			"job-1": {JobDescription: "Full description with requirements: Python, Spark, Airflow."},
		},
	}

	batch, err := New(source, testOptions("Data Engineer")).Collect(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, batch.Collected())
	posting := batch.Postings[0]
	assert.Equal(t, "job-1", posting.ID)
	assert.Contains(t, posting.Description, "Python, Spark, Airflow")
	assert.Equal(t, types.PostingSourceListing, posting.Source)
	assert.Equal(t, []string{"job-1"}, source.listingIDs)
}

func TestCollector_Collect_ListingFailureFallsBackToSnippet(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Data Engineer", CompanyName: "Acme", Location: "Berlin", JobID: "job-1", Description: "Snippet text."},
			},
		},
		listingErrs: map[string]error{
			"job-1": errors.New("listing unavailable"),
		},
	}

	batch, err := New(source, testOptions("Data Engineer")).Collect(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, batch.Collected())
	assert.Equal(t, "Snippet text.", batch.Postings[0].Description)
	assert.Equal(t, types.PostingSourceSearch, batch.Postings[0].Source)
}

func TestCollector_Collect_SearchFailureIsTolerated(t *testing.T) {
	failing := "Data Engineer jobs in Germany"
	working := "ML Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			working: {
				{Title: "ML Engineer", CompanyName: "Beta", Location: "Munich", Description: "Train models."},
			},
		},
		searchErrs: map[string]error{
			failing: errors.New("quota exceeded"),
		},
	}

	opts := testOptions("Data Engineer", "ML Engineer")
	opts.SkipListings = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, batch.Collected())
	assert.Equal(t, "ML Engineer", batch.Postings[0].Title)
}

func TestCollector_Collect_StopsAtLimit(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	var results []serpapi.JobResult
	for i := 0; i < 5; i++ {
		results = append(results, serpapi.JobResult{
			Title:       "Data Engineer",
			CompanyName: fmt.Sprintf("Company %d", i),
			Location:    "Berlin",
			Description: "Work with data.",
		})
	}
	source := &fakeSource{resultsByQuery: map[string][]serpapi.JobResult{query: results}}

	opts := testOptions("Data Engineer")
	opts.Limit = 2
	opts.SkipListings = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Collected())
	assert.Equal(t, 2, batch.Requested)
}

func TestCollector_Collect_UnderFulfilment(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Data Engineer", CompanyName: "Acme", Location: "Berlin", Description: "Only match."},
			},
		},
	}

	opts := testOptions("Data Engineer")
	opts.SkipListings = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Collected())
	assert.Equal(t, 10, batch.Requested)
}

func TestCollector_Collect_EmptyResultsIsValid(t *testing.T) {
	source := &fakeSource{}
	batch, err := New(source, testOptions("Data Engineer")).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Collected())
	assert.Equal(t, []string{"Data Engineer"}, batch.Titles)
	assert.Equal(t, "Germany", batch.Country)
}

func TestCollector_Collect_NoTitles(t *testing.T) {
	_, err := New(&fakeSource{}, Options{Country: "Germany"}).Collect(context.Background())
	require.Error(t, err)

	var collectErr *Error
	assert.ErrorAs(t, err, &collectErr)
	assert.Contains(t, err.Error(), "no target titles")
}

func TestCollector_Collect_PageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div class="job-description">We need Kafka and Flink experience.</div></body></html>`))
	}))
	defer server.Close()

	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Data Engineer", CompanyName: "Acme", Location: "Berlin", ShareLink: server.URL},
			},
		},
	}

	opts := testOptions("Data Engineer")
	opts.SkipListings = true
	opts.FetchPages = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, batch.Collected())
	posting := batch.Postings[0]
	assert.Contains(t, posting.Description, "Kafka and Flink")
	assert.Equal(t, types.PostingSourcePage, posting.Source)
	assert.Equal(t, server.URL, posting.Link)
}

func TestCollector_Collect_NoDescriptionAnywhere(t *testing.T) {
	query := "Data Engineer jobs in Germany"
	source := &fakeSource{
		resultsByQuery: map[string][]serpapi.JobResult{
			query: {
				{Title: "Data Engineer", CompanyName: "Acme", Location: "Berlin"},
			},
		},
	}

	opts := testOptions("Data Engineer")
	opts.SkipListings = true
	batch, err := New(source, opts).Collect(context.Background())
	require.NoError(t, err)

	// The posting is kept; extraction decides what to do with empty text.
	require.Equal(t, 1, batch.Collected())
	assert.Empty(t, batch.Postings[0].Description)
	assert.Empty(t, batch.Postings[0].Source)
}

func TestPostingPageText_UsesPlatformSelectors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<div class="job-description">
				<p>Design streaming systems with Kafka.</p>
				<form id="application-form">Apply here</form>
			</div>
		</body></html>`))
	}))
	defer server.Close()

	text, err := PostingPageText(context.Background(), server.URL, PageOptions{})
	require.NoError(t, err)
	assert.Contains(t, text, "streaming systems")
	assert.NotContains(t, text, "Apply here")
}
