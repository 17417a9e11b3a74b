package mock

import "github.com/fwojciec/chatshare"

var _ chatshare.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of chatshare.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*chatshare.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*chatshare.ExtractResult, error) {
	return e.ExtractFn(html)
}
