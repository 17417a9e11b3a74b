// Package goquery implements the DOM extraction strategy on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatshare"
	"golang.org/x/net/html"
)

// Ensure Node implements chatshare.Node at compile time.
var _ chatshare.Node = (*Node)(nil)

// Node adapts a goquery selection of a single element to chatshare.Node.
type Node struct {
	sel *goquery.Selection
}

// NewNode wraps the first element of sel.
func NewNode(sel *goquery.Selection) *Node {
	return &Node{sel: sel.First()}
}

// ParseFragment parses markup and returns a Node for its first element
// matching selector.
func ParseFragment(markup, selector string) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, chatshare.Errorf(chatshare.EINVALID, "failed to parse HTML: %v", err)
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, chatshare.Errorf(chatshare.ENOTFOUND, "no element matches %q", selector)
	}
	return NewNode(sel), nil
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the trimmed text nodes of the subtree joined by single
// spaces. Script, style and template contents are not text.
func (n *Node) Text() string {
	var parts []string
	for _, root := range n.sel.Nodes {
		collectText(root, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// QuerySelector returns the first descendant matching selector.
func (n *Node) QuerySelector(selector string) (chatshare.Node, bool) {
	found := n.sel.Find(selector)
	if found.Length() == 0 {
		return nil, false
	}
	return NewNode(found), true
}

// QuerySelectorAll returns all descendants matching selector in document
// order.
func (n *Node) QuerySelectorAll(selector string) []chatshare.Node {
	found := n.sel.Find(selector)
	nodes := make([]chatshare.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// HTML returns the outer markup of the node.
func (n *Node) HTML() (string, error) {
	return goquery.OuterHtml(n.sel)
}
