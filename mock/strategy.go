package mock

import "github.com/fwojciec/chatshare"

var _ chatshare.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of chatshare.Strategy.
type Strategy struct {
	ParseFn func(markup string) ([]chatshare.Turn, error)
	NameFn  func() string
}

func (s *Strategy) Parse(markup string) ([]chatshare.Turn, error) {
	return s.ParseFn(markup)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}
