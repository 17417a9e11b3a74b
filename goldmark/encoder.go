// Package goldmark renders conversations as standalone HTML pages.
package goldmark

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/export"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Ensure HTMLEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*HTMLEncoder)(nil)

// HTMLEncoder renders the markdown form of a conversation to HTML.
// Raw HTML inside turns is omitted from the output.
type HTMLEncoder struct {
	md       goldmark.Markdown
	markdown *export.MarkdownEncoder
}

// NewHTMLEncoder creates an HTMLEncoder with GitHub-flavored markdown
// tables, strikethrough and autolinks.
func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		markdown: export.NewMarkdownEncoder(),
	}
}

// Encode writes a complete HTML document to w.
func (e *HTMLEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	var src bytes.Buffer
	if err := e.markdown.Encode(&src, c); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := e.md.Convert(src.Bytes(), &body); err != nil {
		return chatshare.Errorf(chatshare.EINTERNAL, "failed to render HTML: %v", err)
	}

	title := c.Title
	if title == "" {
		title = "Untitled Conversation"
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body.String())
	return err
}

// Extension returns "html".
func (e *HTMLEncoder) Extension() string {
	return "html"
}
