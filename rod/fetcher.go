// Package rod implements chatshare.Fetcher with headless Chrome via
// github.com/go-rod/rod, for share pages that render their conversation
// client-side.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/chatshare"
	"github.com/go-rod/rod"
)

// Default timings for loading a share page.
const (
	DefaultFetchTimeout      = 60 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
	DefaultSelectorTimeout   = 15 * time.Second
	DefaultHydrationDelay    = 8 * time.Second
)

// Ensure Fetcher implements chatshare.Fetcher at compile time.
var _ chatshare.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered share pages using Chrome browser automation.
// After navigation it waits for the first message node; if none appears in
// time it gives the page a fixed delay to hydrate and returns whatever was
// rendered.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	closed  atomic.Bool

	fetchTimeout      time.Duration
	navigationTimeout time.Duration
	selectorTimeout   time.Duration
	hydrationDelay    time.Duration
	waitSelector      string
	maxPages          int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a whole Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithNavigationTimeout bounds navigation and the load event.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.navigationTimeout = d
	}
}

// WithSelectorTimeout sets how long to wait for the first message node.
func WithSelectorTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.selectorTimeout = d
	}
}

// WithHydrationDelay sets the pause used when no message node appears.
func WithHydrationDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.hydrationDelay = d
	}
}

// WithWaitSelector overrides the selector that marks a rendered page.
// Defaults to chatshare.MessageSelector.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithBrowserMaxPages sets how many pages the browser serves before it is
// recycled.
func WithBrowserMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout:      DefaultFetchTimeout,
		navigationTimeout: DefaultNavigationTimeout,
		selectorTimeout:   DefaultSelectorTimeout,
		hydrationDelay:    DefaultHydrationDelay,
		waitSelector:      chatshare.MessageSelector,
		maxPages:          DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered markup.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", chatshare.Errorf(chatshare.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.NewPage()
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := f.navigate(page, url); err != nil {
		return "", err
	}

	if err := f.waitForMessages(ctx, page); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}

	return html, nil
}

func (f *Fetcher) navigate(page *rod.Page, url string) error {
	nav := page.Timeout(f.navigationTimeout)
	defer nav.CancelTimeout()

	if err := nav.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return nil
}

// waitForMessages waits for the first message node. If it never appears,
// the page gets the hydration delay instead; only cancellation of ctx is
// an error.
func (f *Fetcher) waitForMessages(ctx context.Context, page *rod.Page) error {
	wait := page.Timeout(f.selectorTimeout)
	_, err := wait.Element(f.waitSelector)
	wait.CancelTimeout()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	timer := time.NewTimer(f.hydrationDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
