package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatshare"
)

// Ensure Parser implements chatshare.Strategy at compile time.
var _ chatshare.Strategy = (*Parser)(nil)

// Parser extracts turns from the structured message nodes of a share page.
// Parser is safe for concurrent use if its Converter is.
type Parser struct {
	converter chatshare.Converter
}

// NewParser creates a Parser rendering message bodies with converter.
func NewParser(converter chatshare.Converter) *Parser {
	return &Parser{converter: converter}
}

// Name returns the strategy's identifier.
func (p *Parser) Name() string {
	return "dom"
}

// Parse returns one turn per message node. Nodes carrying the role attribute
// are preferred; pages without them are read from their article elements.
// Turns without text and markdown are dropped, repeats anywhere in the page
// are removed and the survivors are numbered 1..N.
func (p *Parser) Parse(markup string) ([]chatshare.Turn, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, chatshare.Errorf(chatshare.EINVALID, "failed to parse HTML: %v", err)
	}

	nodes := doc.Find(chatshare.MessageSelector)
	if nodes.Length() == 0 {
		nodes = doc.Find(chatshare.FallbackMessageSelector)
	}

	turns := make([]chatshare.Turn, 0, nodes.Length())
	nodes.Each(func(i int, sel *goquery.Selection) {
		turns = append(turns, p.buildTurn(i+1, &Node{sel: sel}))
	})

	turns = chatshare.DropEmpty(turns)
	turns = chatshare.DedupeGlobal(turns)
	return chatshare.Renumber(turns), nil
}

// buildTurn extracts a single turn. Failures on one part of the node leave
// that field empty instead of failing the page.
func (p *Parser) buildTurn(number int, node chatshare.Node) chatshare.Turn {
	body := chatshare.LocateBody(node)

	raw, err := body.HTML()
	if err != nil {
		raw = ""
	}
	markdown := p.markdown(raw)
	links, images := chatshare.ExtractLinksAndImages(body)

	return chatshare.Turn{
		Number:     number,
		Role:       chatshare.ClassifyRole(node),
		Text:       chatshare.NormalizeWhitespace(body.Text()),
		Markdown:   markdown,
		CodeBlocks: chatshare.ExtractCodeBlocks(markdown),
		Links:      links,
		Images:     images,
		RawHTML:    raw,
	}
}

func (p *Parser) markdown(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	md, err := p.converter.Convert(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}
