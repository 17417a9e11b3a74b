package chatshare

import "context"

// Fetcher retrieves page markup from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// share pages.
type Fetcher interface {
	// Fetch retrieves the page and returns its markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FetchProgress reports progress while fetching a batch of share pages.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Turns     int
	Error     error
}

// FetchProgressFunc is called as pages are processed.
type FetchProgressFunc func(FetchProgress)

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSet remembers URLs already scheduled in a batch.
type URLSet interface {
	// TestAndAdd reports whether key may have been added before and adds it.
	TestAndAdd(key string) bool
}
