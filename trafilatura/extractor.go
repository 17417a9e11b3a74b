// Package trafilatura extracts share page titles with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/chatshare"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements chatshare.Extractor at compile time.
var _ chatshare.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to read page metadata and main content.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &chatshare.ExtractResult{
		Title:       chatshare.CleanTitle(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
