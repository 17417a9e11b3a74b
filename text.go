package chatshare

import (
	"regexp"
	"strings"
)

var horizontalSpace = regexp.MustCompile(`[ \t]+`)

// NormalizeWhitespace collapses runs of spaces and tabs into a single
// space, then turns non-breaking spaces into ordinary ones and trims the
// result. Non-breaking spaces are not collapsed. Newlines are kept.
func NormalizeWhitespace(s string) string {
	if s == "" {
		return ""
	}
	s = horizontalSpace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// codeFence matches a fenced block with an optional info string on the
// opening line. The body is matched lazily so adjacent blocks stay apart.
var codeFence = regexp.MustCompile("(?s)```(?:[^\\n]*\\n)?(.*?)```")

// ExtractCodeBlocks returns the trimmed bodies of all fenced code blocks in
// markdown, in order. Empty blocks are dropped.
func ExtractCodeBlocks(markdown string) []string {
	if markdown == "" {
		return nil
	}

	var blocks []string
	for _, m := range codeFence.FindAllStringSubmatch(markdown, -1) {
		if body := strings.TrimSpace(m[1]); body != "" {
			blocks = append(blocks, body)
		}
	}
	return blocks
}

// CleanTitle trims a page title and removes the site prefix share pages put
// in front of it ("ChatGPT - ").
func CleanTitle(title string) string {
	title = NormalizeWhitespace(title)
	if rest, ok := strings.CutPrefix(title, "ChatGPT - "); ok {
		return strings.TrimSpace(rest)
	}
	if title == "ChatGPT" {
		return ""
	}
	return title
}
