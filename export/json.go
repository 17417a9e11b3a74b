package export

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/chatshare"
)

// Ensure JSONEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*JSONEncoder)(nil)

// JSONEncoder writes the turns as an indented JSON array.
type JSONEncoder struct{}

// NewJSONEncoder creates a new JSONEncoder.
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

// Encode writes the turns ordered by number. Missing lists are written as
// empty arrays so every record has the same shape.
func (e *JSONEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	turns := sortedTurns(c.Turns)
	for i := range turns {
		turns[i].CodeBlocks = nonNil(turns[i].CodeBlocks)
		turns[i].Links = nonNil(turns[i].Links)
		turns[i].Images = nonNil(turns[i].Images)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(turns)
}

// Extension returns "json".
func (e *JSONEncoder) Extension() string {
	return "json"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
