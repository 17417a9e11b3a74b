package mock

import "github.com/fwojciec/chatshare"

var _ chatshare.Node = (*Node)(nil)

// Node is a mock implementation of chatshare.Node.
type Node struct {
	AttrFn             func(name string) (string, bool)
	TextFn             func() string
	QuerySelectorFn    func(selector string) (chatshare.Node, bool)
	QuerySelectorAllFn func(selector string) []chatshare.Node
	HTMLFn             func() (string, error)
}

func (n *Node) Attr(name string) (string, bool) {
	return n.AttrFn(name)
}

func (n *Node) Text() string {
	return n.TextFn()
}

func (n *Node) QuerySelector(selector string) (chatshare.Node, bool) {
	return n.QuerySelectorFn(selector)
}

func (n *Node) QuerySelectorAll(selector string) []chatshare.Node {
	return n.QuerySelectorAllFn(selector)
}

func (n *Node) HTML() (string, error) {
	return n.HTMLFn()
}
