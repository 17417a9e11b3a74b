package chatshare

import "io"

// ListSeparator joins list-valued fields in tabular exports.
const ListSeparator = " |SEP| "

// TabularColumns returns the fixed column order of tabular exports.
func TabularColumns() []string {
	return []string{"turn", "role", "text", "markdown", "code_blocks", "links", "images", "raw_html"}
}

// Encoder serializes a conversation.
type Encoder interface {
	// Encode writes the conversation's turns to w.
	Encode(w io.Writer, c *Conversation) error

	// Extension returns the file extension for encoded output, without dot.
	Extension() string
}

// ExportWriter persists encoded conversations.
type ExportWriter interface {
	// WriteExport encodes c with enc and stores the result, returning the
	// path it was written to.
	WriteExport(c *Conversation, enc Encoder) (path string, err error)
}
