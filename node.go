package chatshare

import (
	"strings"
	"unicode/utf8"
)

// Node is the minimal view of a markup element used by the extraction
// helpers. Implementations wrap a concrete DOM library.
type Node interface {
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the flattened text of the subtree: each text node
	// trimmed, empty ones skipped, joined with a single space.
	Text() string

	// QuerySelector returns the first descendant matching the CSS selector.
	QuerySelector(selector string) (Node, bool)

	// QuerySelectorAll returns all descendants matching the CSS selector
	// in document order.
	QuerySelectorAll(selector string) []Node

	// HTML returns the serialized markup of the node, including the node
	// itself.
	HTML() (string, error)
}

// RoleAttr is the attribute carrying the speaker role on message nodes.
const RoleAttr = "data-message-author-role"

// Message node selectors, in order of preference.
const (
	MessageSelector         = "[" + RoleAttr + "]"
	FallbackMessageSelector = "article"
)

// roleLabelMaxLen bounds the text of nodes that only carry a short role
// label instead of a role attribute.
const roleLabelMaxLen = 32

// ClassifyRole returns the speaker role of a message node. The role
// attribute is trusted verbatim. Without it, short nodes mentioning
// "assistant" or "user" are classified by that label and everything else
// defaults to the assistant.
func ClassifyRole(n Node) Role {
	if v, ok := n.Attr(RoleAttr); ok && v != "" {
		return Role(v)
	}

	text := strings.ToLower(n.Text())
	short := utf8.RuneCountInString(text) < roleLabelMaxLen
	switch {
	case short && strings.Contains(text, "assistant"):
		return RoleAssistant
	case short && strings.Contains(text, "user"):
		return RoleUser
	}
	return RoleAssistant
}

// BodyMatcher returns the content subtree of a message node, if it finds one.
type BodyMatcher func(n Node) (Node, bool)

// SelectorMatcher returns a BodyMatcher selecting the first descendant that
// matches selector.
func SelectorMatcher(selector string) BodyMatcher {
	return func(n Node) (Node, bool) {
		return n.QuerySelector(selector)
	}
}

// bodySelectors lists the content selectors tried on each message node,
// most specific first. Share page markup drifts between versions; each
// entry covers one known layout.
var bodySelectors = [...]string{
	`[data-testid="markdown"]`,
	`[data-message-author-role-content]`,
	`div[class*="markdown"]`,
	`div[class*="prose"]`,
	`div`,
}

var bodyMatchers = func() []BodyMatcher {
	matchers := make([]BodyMatcher, 0, len(bodySelectors))
	for _, sel := range bodySelectors {
		matchers = append(matchers, SelectorMatcher(sel))
	}
	return matchers
}()

// BodySelectors returns the ordered content selectors used by LocateBody.
func BodySelectors() []string {
	s := bodySelectors
	return s[:]
}

// LocateBody returns the content subtree of a message node. The first
// matcher that finds a subtree wins; the node itself is used when none do.
func LocateBody(n Node) Node {
	for _, match := range bodyMatchers {
		if body, ok := match(n); ok {
			return body
		}
	}
	return n
}

// linkSchemes are the href prefixes kept by ExtractLinksAndImages.
// Matching is case-sensitive.
var linkSchemes = []string{"http:", "https:", "mailto:", "tel:"}

// ExtractLinksAndImages collects anchor hrefs with an allowed scheme and all
// image sources below body, in document order. Duplicates are kept; missing
// or empty attributes are skipped.
func ExtractLinksAndImages(body Node) (links, images []string) {
	for _, a := range body.QuerySelectorAll("a[href]") {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			continue
		}
		if hasLinkScheme(href) {
			links = append(links, href)
		}
	}

	for _, img := range body.QuerySelectorAll("img[src]") {
		if src, ok := img.Attr("src"); ok && src != "" {
			images = append(images, src)
		}
	}

	return links, images
}

func hasLinkScheme(href string) bool {
	for _, scheme := range linkSchemes {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
