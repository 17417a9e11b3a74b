// Package etree encodes conversations as XML documents.
package etree

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/chatshare"
)

// Ensure XMLEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*XMLEncoder)(nil)

// XMLEncoder writes a <conversation> element with one <turn> child per turn.
type XMLEncoder struct {
	indent int
}

// NewXMLEncoder creates a new XMLEncoder indenting with two spaces.
func NewXMLEncoder() *XMLEncoder {
	return &XMLEncoder{indent: 2}
}

// Encode writes the conversation document to w.
func (e *XMLEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("conversation")
	root.CreateAttr("source", c.SourceURL)
	if c.Title != "" {
		root.CreateAttr("title", c.Title)
	}
	if c.ShareID != "" {
		root.CreateAttr("share-id", c.ShareID)
	}
	if c.Strategy != "" {
		root.CreateAttr("strategy", c.Strategy)
	}

	turns := make([]chatshare.Turn, len(c.Turns))
	copy(turns, c.Turns)
	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Number < turns[j].Number })

	for _, t := range turns {
		el := root.CreateElement("turn")
		el.CreateAttr("number", strconv.Itoa(t.Number))
		el.CreateAttr("role", string(t.Role))
		el.CreateElement("text").SetText(t.Text)
		el.CreateElement("markdown").SetText(t.Markdown)
		addList(el, "code-blocks", "code", t.CodeBlocks)
		addList(el, "links", "link", t.Links)
		addList(el, "images", "image", t.Images)
		if t.RawHTML != "" {
			el.CreateElement("raw-html").CreateCData(t.RawHTML)
		}
	}

	doc.Indent(e.indent)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}
	return nil
}

// Extension returns "xml".
func (e *XMLEncoder) Extension() string {
	return "xml"
}

// addList appends a container element holding one child per item. Empty
// lists are omitted.
func addList(parent *etree.Element, container, item string, values []string) {
	if len(values) == 0 {
		return
	}
	list := parent.CreateElement(container)
	for _, v := range values {
		list.CreateElement(item).SetText(v)
	}
}
