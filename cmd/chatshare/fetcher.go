package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/rod"
)

var _ chatshare.Fetcher = (*lazyBrowser)(nil)

// lazyBrowser starts a headless browser on first use, so runs that never
// need one do not pay for launching Chrome.
type lazyBrowser struct {
	opts []rod.Option

	once    sync.Once
	fetcher *rod.Fetcher
	err     error
}

func newLazyBrowser(opts ...rod.Option) *lazyBrowser {
	return &lazyBrowser{opts: opts}
}

func (b *lazyBrowser) Fetch(ctx context.Context, url string) (string, error) {
	b.once.Do(func() {
		b.fetcher, b.err = rod.NewFetcher(b.opts...)
		if b.err != nil {
			b.err = fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", b.err)
		}
	})
	if b.err != nil {
		return "", b.err
	}
	return b.fetcher.Fetch(ctx, url)
}

func (b *lazyBrowser) Close() error {
	if b.fetcher == nil {
		return nil
	}
	return b.fetcher.Close()
}
