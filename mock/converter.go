package mock

import "github.com/fwojciec/chatshare"

var _ chatshare.Converter = (*Converter)(nil)

// Converter is a mock implementation of chatshare.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
