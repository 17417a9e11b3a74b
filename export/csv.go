// Package export provides the tabular and JSON encoders for conversations.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/chatshare"
)

// Ensure CSVEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*CSVEncoder)(nil)

// CSVEncoder writes one row per turn under the fixed tabular header.
// List fields are joined with chatshare.ListSeparator.
type CSVEncoder struct{}

// NewCSVEncoder creates a new CSVEncoder.
func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

// Encode writes the header and the turns ordered by number.
func (e *CSVEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(chatshare.TabularColumns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range sortedTurns(c.Turns) {
		if err := cw.Write(row(t)); err != nil {
			return fmt.Errorf("writing turn %d: %w", t.Number, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Extension returns "csv".
func (e *CSVEncoder) Extension() string {
	return "csv"
}

func row(t chatshare.Turn) []string {
	return []string{
		strconv.Itoa(t.Number),
		string(t.Role),
		t.Text,
		t.Markdown,
		strings.Join(t.CodeBlocks, chatshare.ListSeparator),
		strings.Join(t.Links, chatshare.ListSeparator),
		strings.Join(t.Images, chatshare.ListSeparator),
		t.RawHTML,
	}
}

// sortedTurns returns a copy of turns ordered by number.
func sortedTurns(turns []chatshare.Turn) []chatshare.Turn {
	out := make([]chatshare.Turn, len(turns))
	copy(out, turns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
