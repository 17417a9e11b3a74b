// Package share turns share links into conversations: it fetches pages,
// runs the extraction strategies and assembles the result. It coordinates
// retries, rate limiting and batch fan-out around the pure extraction
// engine.
package share

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/xxhash"
)

// DefaultConcurrency is the number of pages fetched in parallel by FetchAll.
const DefaultConcurrency = 4

// Service fetches share pages and extracts their conversations.
type Service struct {
	// Fetcher retrieves pages. Required for Fetch and FetchAll.
	Fetcher chatshare.Fetcher

	// Browser, if set, is tried when Fetcher fails or returns a page
	// without turns.
	Browser chatshare.Fetcher

	// Parser extracts turns from markup. Required.
	Parser chatshare.Parser

	// Extractor, if set, supplies the conversation title.
	Extractor chatshare.Extractor

	// Limiter, if set, spaces requests per domain.
	Limiter chatshare.DomainLimiter

	// Seen, if set, drops repeated URLs from FetchAll batches.
	Seen chatshare.URLSet

	// Validate, if set, rejects URLs before any request is made.
	Validate func(rawURL string) error

	// Concurrency bounds parallel fetches in FetchAll.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays are the waits between fetch attempts.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger receives retry and fallback messages. Defaults to slog.Default.
	Logger *slog.Logger

	// Now returns the fetch time. Defaults to time.Now.
	Now func() time.Time
}

// Fetch retrieves the share page at rawURL and returns its conversation.
// It returns ENOMESSAGES when the page holds no recognizable turns.
func (s *Service) Fetch(ctx context.Context, rawURL string) (*chatshare.Conversation, error) {
	rawURL = strings.TrimSpace(rawURL)
	if s.Validate != nil {
		if err := s.Validate(rawURL); err != nil {
			return nil, err
		}
	}

	markup, res, err := s.fetchAndParse(ctx, s.Fetcher, rawURL)
	if s.Browser != nil && s.needsBrowser(ctx, res, err) {
		s.logger().Debug("retrying with browser", "url", rawURL, "err", err)
		markup, res, err = s.fetchAndParse(ctx, s.Browser, rawURL)
	}
	if err != nil {
		return nil, err
	}

	return s.build(rawURL, markup, res)
}

// ParseHTML extracts the conversation from markup that was saved earlier.
// sourceURL is recorded as the conversation's origin.
func (s *Service) ParseHTML(sourceURL, markup string) (*chatshare.Conversation, error) {
	res, err := s.Parser.Parse(markup)
	if err != nil {
		return nil, err
	}
	return s.build(strings.TrimSpace(sourceURL), markup, res)
}

func (s *Service) fetchAndParse(ctx context.Context, fetcher chatshare.Fetcher, rawURL string) (string, *chatshare.ParseResult, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, Domain(rawURL)); err != nil {
			return "", nil, err
		}
	}

	onRetry := func(url string, attempt int, err error) {
		s.logger().Warn("retry", "url", url, "attempt", attempt, "err", err)
	}
	markup, err := FetchWithRetry(ctx, rawURL, fetcher.Fetch, onRetry, s.retryDelays())
	if err != nil {
		return "", nil, err
	}

	res, err := s.Parser.Parse(markup)
	if err != nil {
		return "", nil, err
	}
	return markup, res, nil
}

// needsBrowser reports whether a plain fetch left anything a browser could
// add. Missing shares and canceled contexts are final.
func (s *Service) needsBrowser(ctx context.Context, res *chatshare.ParseResult, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return chatshare.ErrorCode(err) != chatshare.ENOTFOUND &&
			!errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded)
	}
	return res == nil || len(res.Turns) == 0
}

func (s *Service) build(sourceURL, markup string, res *chatshare.ParseResult) (*chatshare.Conversation, error) {
	if err := chatshare.RequireTurns(res.Turns); err != nil {
		return nil, err
	}

	return &chatshare.Conversation{
		ShareID:     chatshare.ShareID(sourceURL),
		SourceURL:   sourceURL,
		Title:       s.title(markup),
		Strategy:    res.Strategy,
		ContentHash: xxhash.ContentHash(res.Turns),
		Turns:       res.Turns,
		FetchedAt:   s.now().UTC(),
	}, nil
}

// title returns the page title, or an empty string when there is no
// extractor or it fails.
func (s *Service) title(markup string) string {
	if s.Extractor == nil {
		return ""
	}
	res, err := s.Extractor.Extract(markup)
	if err != nil || res == nil {
		return ""
	}
	return chatshare.CleanTitle(res.Title)
}

func (s *Service) retryDelays() []time.Duration {
	if s.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return s.RetryDelays
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
