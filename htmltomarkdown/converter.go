// Package htmltomarkdown renders message bodies as Markdown using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/chatshare"
)

// Ensure Converter implements chatshare.Converter at compile time.
var _ chatshare.Converter = (*Converter)(nil)

// Converter renders HTML fragments as CommonMark with GitHub-style tables.
// Links stay inline, images are kept and emphasis uses asterisks.
// A Converter is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithEmDelimiter("*"),
				commonmark.WithStrongDelimiter("**"),
			),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into trimmed Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", chatshare.Errorf(chatshare.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", chatshare.Errorf(chatshare.EINTERNAL, "convert to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
