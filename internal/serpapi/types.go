package serpapi

// SearchResponse is the subset of the google_jobs engine response the
// analyzer consumes
type SearchResponse struct {
	JobsResults []JobResult `json:"jobs_results"`
	Error       string      `json:"error,omitempty"`
}

// JobResult is one job entry from a google_jobs search page
type JobResult struct {
	Title        string        `json:"title"`
	CompanyName  string        `json:"company_name"`
	Location     string        `json:"location"`
	Via          string        `json:"via"`
	Description  string        `json:"description"`
	JobID        string        `json:"job_id"`
	ShareLink    string        `json:"share_link"`
	ApplyOptions []ApplyOption `json:"apply_options"`
}

// ApplyOption is an external application link attached to a job entry
type ApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ListingResponse is the subset of the google_jobs_listing engine response
// the analyzer consumes. Depending on the listing, the full text arrives in
// either job_description or description.
type ListingResponse struct {
	JobDescription string        `json:"job_description"`
	Description    string        `json:"description"`
	ApplyOptions   []ApplyOption `json:"apply_options"`
	Error          string        `json:"error,omitempty"`
}

// BestDescription returns the fullest description text the listing carries
func (r *ListingResponse) BestDescription() string {
	if r == nil {
		return ""
	}
	if r.JobDescription != "" {
		return r.JobDescription
	}
	return r.Description
}

// BestLink returns the first external application link, if any
func (r *JobResult) BestLink() string {
	if r.ShareLink != "" {
		return r.ShareLink
	}
	for _, opt := range r.ApplyOptions {
		if opt.Link != "" {
			return opt.Link
		}
	}
	return ""
}
