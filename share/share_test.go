package share_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/goquery"
	"github.com/fwojciec/chatshare/htmltomarkdown"
	"github.com/fwojciec/chatshare/mock"
	"github.com/fwojciec/chatshare/share"
	"github.com/fwojciec/chatshare/stream"
	"github.com/fwojciec/chatshare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testURL     = "https://chatgpt.com/share/6718d5f4-1c2a-8000-9f3b-2a4c5d6e7f80"
	testShareID = "6718d5f4-1c2a-8000-9f3b-2a4c5d6e7f80"
)

const sharePage = `<html><head><title>Go questions</title></head><body>
<div data-message-author-role="user"><div class="markdown">Hello</div></div>
<div data-message-author-role="assistant"><div class="markdown">Hi there</div></div>
</body></html>`

const emptyPage = `<html><body><div id="root"></div></body></html>`

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func staticFetcher(html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) { return html, err },
		CloseFn: func() error { return nil },
	}
}

func newService(fetcher chatshare.Fetcher) *share.Service {
	return &share.Service{
		Fetcher: fetcher,
		Parser: chatshare.NewChainParser(
			goquery.NewParser(htmltomarkdown.NewConverter()),
			stream.NewParser(),
		),
		RetryDelays: []time.Duration{},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:         func() time.Time { return fixedNow },
	}
}

func TestService_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns conversation from share page", func(t *testing.T) {
		t.Parallel()

		svc := newService(staticFetcher(sharePage, nil))
		svc.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*chatshare.ExtractResult, error) {
				return &chatshare.ExtractResult{Title: " Go questions "}, nil
			},
		}

		c, err := svc.Fetch(context.Background(), " "+testURL+" ")

		require.NoError(t, err)
		assert.Equal(t, testURL, c.SourceURL)
		assert.Equal(t, testShareID, c.ShareID)
		assert.Equal(t, "Go questions", c.Title)
		assert.Equal(t, "dom", c.Strategy)
		assert.Equal(t, fixedNow, c.FetchedAt)
		assert.Equal(t, xxhash.ContentHash(c.Turns), c.ContentHash)
		require.Len(t, c.Turns, 2)
		assert.Equal(t, "Hello", c.Turns[0].Text)
		assert.Equal(t, "Hi there", c.Turns[1].Text)
	})

	t.Run("rejects invalid URL before fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			},
		}
		svc := newService(fetcher)
		svc.Validate = chatshare.ValidateShareURL

		_, err := svc.Fetch(context.Background(), "https://example.com/share/abc")

		assert.Equal(t, chatshare.EINVALID, chatshare.ErrorCode(err))
	})

	t.Run("returns ENOMESSAGES for page without turns", func(t *testing.T) {
		t.Parallel()

		_, err := newService(staticFetcher(emptyPage, nil)).Fetch(context.Background(), testURL)

		assert.Equal(t, chatshare.ENOMESSAGES, chatshare.ErrorCode(err))
	})

	t.Run("falls back to browser when plain page has no turns", func(t *testing.T) {
		t.Parallel()

		svc := newService(staticFetcher(emptyPage, nil))
		svc.Browser = staticFetcher(sharePage, nil)

		c, err := svc.Fetch(context.Background(), testURL)

		require.NoError(t, err)
		assert.Len(t, c.Turns, 2)
	})

	t.Run("falls back to browser when plain fetch fails", func(t *testing.T) {
		t.Parallel()

		svc := newService(staticFetcher("", errors.New("HTTP 403")))
		svc.Browser = staticFetcher(sharePage, nil)

		c, err := svc.Fetch(context.Background(), testURL)

		require.NoError(t, err)
		assert.Len(t, c.Turns, 2)
	})

	t.Run("does not use browser for missing share", func(t *testing.T) {
		t.Parallel()

		var browserCalls atomic.Int32
		svc := newService(staticFetcher("", chatshare.Errorf(chatshare.ENOTFOUND, "HTTP 404")))
		svc.Browser = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				browserCalls.Add(1)
				return sharePage, nil
			},
		}

		_, err := svc.Fetch(context.Background(), testURL)

		assert.Equal(t, chatshare.ENOTFOUND, chatshare.ErrorCode(err))
		assert.Zero(t, browserCalls.Load())
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if calls.Add(1) == 1 {
					return "", errors.New("connection reset")
				}
				return sharePage, nil
			},
		}
		svc := newService(fetcher)
		svc.RetryDelays = []time.Duration{0}

		_, err := svc.Fetch(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("waits on the domain limiter", func(t *testing.T) {
		t.Parallel()

		var domains []string
		svc := newService(staticFetcher(sharePage, nil))
		svc.Limiter = limiterFunc(func(ctx context.Context, domain string) error {
			domains = append(domains, domain)
			return nil
		})

		_, err := svc.Fetch(context.Background(), testURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"chatgpt.com"}, domains)
	})

	t.Run("ignores extractor failures", func(t *testing.T) {
		t.Parallel()

		svc := newService(staticFetcher(sharePage, nil))
		svc.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*chatshare.ExtractResult, error) {
				return nil, errors.New("no content")
			},
		}

		c, err := svc.Fetch(context.Background(), testURL)

		require.NoError(t, err)
		assert.Empty(t, c.Title)
	})
}

func TestService_ParseHTML(t *testing.T) {
	t.Parallel()

	t.Run("extracts conversation from saved markup", func(t *testing.T) {
		t.Parallel()

		c, err := newService(nil).ParseHTML("saved/Share Page.html", sharePage)

		require.NoError(t, err)
		assert.Equal(t, "saved/Share Page.html", c.SourceURL)
		assert.Equal(t, "saved-share-page-html", c.ShareID)
		assert.Len(t, c.Turns, 2)
	})

	t.Run("returns ENOMESSAGES for markup without turns", func(t *testing.T) {
		t.Parallel()

		_, err := newService(nil).ParseHTML("empty.html", emptyPage)

		assert.Equal(t, chatshare.ENOMESSAGES, chatshare.ErrorCode(err))
	})
}

type limiterFunc func(ctx context.Context, domain string) error

func (f limiterFunc) Wait(ctx context.Context, domain string) error { return f(ctx, domain) }
