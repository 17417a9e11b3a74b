// Package stream implements the fallback extraction strategy that reads
// conversation records from the serialized payload some share pages embed
// in inline scripts instead of rendering message nodes.
package stream

import (
	"strings"

	"golang.org/x/net/html"
)

// Sentinel is the call prefix that wraps each embedded payload fragment.
const Sentinel = "window.__reactRouterContext.streamController.enqueue("

// fragmentEnd terminates a sentinel call.
const fragmentEnd = `");`

// ScanFragments returns the payload fragments of every sentinel call in
// markup, in discovery order. Each fragment is the text between the
// sentinel's opening parenthesis and the next `");`, trimmed, with one
// layer of surrounding quotes and a trailing parenthesis removed. Scanning
// stops at a sentinel without a terminator.
func ScanFragments(markup string) []string {
	var fragments []string
	pos := 0
	for {
		i := strings.Index(markup[pos:], Sentinel)
		if i < 0 {
			break
		}
		start := pos + i + len(Sentinel)

		j := strings.Index(markup[start:], fragmentEnd)
		if j < 0 {
			break
		}
		end := start + j

		fragments = append(fragments, unwrapFragment(markup[start:end]))
		pos = end + len(fragmentEnd)
	}
	return fragments
}

func unwrapFragment(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && isQuote(s[0]) {
		s = s[1:]
	}
	if s != "" && isQuote(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return strings.TrimSuffix(s, ")")
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// Payload concatenates the fragments of markup and decodes HTML entities,
// producing the flat buffer searched by MatchRecords. It returns an empty
// string when markup carries no sentinel.
func Payload(markup string) string {
	fragments := ScanFragments(markup)
	if len(fragments) == 0 {
		return ""
	}
	return html.UnescapeString(strings.Join(fragments, ""))
}
