package stream

import (
	"strings"

	"github.com/fwojciec/chatshare"
)

// Ensure Parser implements chatshare.Strategy at compile time.
var _ chatshare.Strategy = (*Parser)(nil)

// Parser extracts turns from the serialized payload embedded in a share
// page. It has no state and is safe for concurrent use.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns the strategy's identifier.
func (p *Parser) Name() string {
	return "stream"
}

// Parse returns one turn per payload record with non-blank text. Markdown
// mirrors the text; links, images and raw markup stay empty. Only
// consecutive repeats are removed, then turns are numbered 1..N.
func (p *Parser) Parse(markup string) ([]chatshare.Turn, error) {
	if !strings.Contains(markup, Sentinel) {
		return nil, nil
	}

	records := MatchRecords(Payload(markup))
	turns := make([]chatshare.Turn, 0, len(records))
	for _, rec := range records {
		text := JoinParts(DecodeParts(rec.Parts))
		if text == "" {
			continue
		}
		turns = append(turns, chatshare.Turn{
			Role:       rec.Role,
			Text:       text,
			Markdown:   text,
			CodeBlocks: chatshare.ExtractCodeBlocks(text),
		})
	}

	turns = chatshare.DedupeAdjacent(turns)
	return chatshare.Renumber(turns), nil
}
