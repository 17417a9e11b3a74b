package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fwojciec/chatshare"
)

// Ensure MarkdownEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*MarkdownEncoder)(nil)

// MarkdownEncoder writes the conversation as a single markdown document with
// one section per turn.
type MarkdownEncoder struct{}

// NewMarkdownEncoder creates a new MarkdownEncoder.
func NewMarkdownEncoder() *MarkdownEncoder {
	return &MarkdownEncoder{}
}

// Encode writes a heading for the conversation followed by the turns. A turn
// without markdown falls back to its plain text.
func (e *MarkdownEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	bw := bufio.NewWriter(w)

	title := c.Title
	if title == "" {
		title = "Untitled Conversation"
	}
	fmt.Fprintf(bw, "# %s\n\n", title)
	if c.SourceURL != "" {
		fmt.Fprintf(bw, "Source: <%s>\n\n", c.SourceURL)
	}

	for _, t := range sortedTurns(c.Turns) {
		fmt.Fprintf(bw, "## %d. %s\n\n", t.Number, t.Role)
		body := t.Markdown
		if body == "" {
			body = t.Text
		}
		fmt.Fprintf(bw, "%s\n\n", body)
	}

	return bw.Flush()
}

// Extension returns "md".
func (e *MarkdownEncoder) Extension() string {
	return "md"
}
