// Package readability extracts share page titles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/chatshare"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements chatshare.Extractor at compile time.
var _ chatshare.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to read the page title and main content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main content.
// The title is cleaned with chatshare.CleanTitle.
func (e *Extractor) Extract(rawHTML string) (*chatshare.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, chatshare.Errorf(chatshare.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &chatshare.ExtractResult{
		Title:       chatshare.CleanTitle(article.Title),
		ContentHTML: article.Content,
	}, nil
}
