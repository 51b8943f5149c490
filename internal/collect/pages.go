// Package collect - pages.go implements the page-download fallback for
// postings whose search results carry no usable description.
package collect

import (
	"context"
	"time"

	"github.com/jonathan/job-market-analyzer/internal/fetch"
)

// PageOptions configures the page-download fallback.
type PageOptions struct {
	// UseBrowser renders the page in a headless browser when the plain HTTP
	// fetch yields too little text to be a real description.
	UseBrowser bool
	Timeout    time.Duration
	Verbose    bool
}

// PostingPageText downloads a posting's own page and extracts the
// description text, using board-specific selectors when the platform is
// recognized.
func PostingPageText(ctx context.Context, link string, opts PageOptions) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = fetch.DefaultTimeout
	}

	result, err := fetch.URL(ctx, link, &fetch.Options{
		Timeout:   opts.Timeout,
		UserAgent: fetch.DefaultUserAgent,
	})
	if err != nil {
		return "", err
	}

	platform := fetch.DetectPlatform(link)
	content := fetch.PlatformContentSelectors(platform)
	noise := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", err
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, berr := fetch.WithBrowser(ctx, link, opts.Timeout, opts.Verbose)
		if berr != nil {
			// Keep whatever the plain fetch produced.
			return text, nil
		}
		rendered, rerr := fetch.ExtractMainText(html, content, noise...)
		if rerr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}
