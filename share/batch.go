package share

import (
	"context"
	"strings"

	"github.com/fwojciec/chatshare"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of fetching one URL of a batch.
type Result struct {
	URL          string
	Conversation *chatshare.Conversation
	Err          error
}

// FetchAll fetches urls in parallel and returns one Result per distinct
// URL, in input order. A failed URL does not stop the batch; its error is
// kept in its Result and reported through progress. progress, if not nil,
// is called from a single goroutine as pages complete.
func (s *Service) FetchAll(ctx context.Context, urls []string, progress chatshare.FetchProgressFunc) []Result {
	urls = s.distinct(urls)
	total := len(urls)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type fetched struct {
		position int
		result   Result
	}
	resultCh := make(chan fetched, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				c, err := s.Fetch(gctx, u)
				resultCh <- fetched{position: i, result: Result{URL: u, Conversation: c, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	completed := 0
	for f := range resultCh {
		completed++
		results[f.position] = f.result

		if progress != nil {
			p := chatshare.FetchProgress{
				URL:       f.result.URL,
				Completed: completed,
				Total:     total,
				Error:     f.result.Err,
			}
			if f.result.Conversation != nil {
				p.Turns = len(f.result.Conversation.Turns)
			}
			progress(p)
		}
	}

	return results
}

// distinct drops blank entries and, when Seen is set, URLs already seen.
func (s *Service) distinct(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if s.Seen != nil && s.Seen.TestAndAdd(u) {
			s.logger().Info("skipping duplicate URL", "url", u)
			continue
		}
		out = append(out, u)
	}
	return out
}
