package stream

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// PartSeparator joins the text parts of one record.
const PartSeparator = "\n\n"

var quotedLiteral = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// DecodeParts returns the string items of a raw parts array. Arrays that
// are not valid JSON are read literal by literal instead, decoding
// backslash escapes by hand; non-string items are ignored.
func DecodeParts(raw string) []string {
	blob := "[" + strings.TrimSpace(raw) + "]"
	if gjson.Valid(blob) {
		var parts []string
		for _, item := range gjson.Parse(blob).Array() {
			if item.Type == gjson.String {
				parts = append(parts, item.Str)
			}
		}
		return parts
	}

	matches := quotedLiteral.FindAllStringSubmatch(blob, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, Unescape(m[1]))
	}
	return parts
}

// JoinParts trims each part, drops blank ones and joins the rest with
// PartSeparator.
func JoinParts(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, PartSeparator)
}

// Unescape decodes backslash escapes in s: the single-character escapes,
// \xNN, \uXXXX (combining surrogate pairs) and \UXXXXXXXX. Unknown or
// truncated escapes are kept as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		if r, ok := simpleEscapes[s[i+1]]; ok {
			b.WriteByte(r)
			i += 2
			continue
		}

		switch s[i+1] {
		case 'x':
			if r, ok := hexRune(s, i+2, 2); ok {
				b.WriteRune(r)
				i += 4
				continue
			}
		case 'u':
			if r, ok := hexRune(s, i+2, 4); ok {
				n := 6
				if utf16.IsSurrogate(r) {
					r, n = decodeSurrogate(s, i+6, r)
				}
				b.WriteRune(r)
				i += n
				continue
			}
		case 'U':
			if r, ok := hexRune(s, i+2, 8); ok && utf8.ValidRune(r) {
				b.WriteRune(r)
				i += 10
				continue
			}
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'a':  '\a',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'/':  '/',
}

// decodeSurrogate combines the high surrogate hi with a following \uXXXX
// low surrogate at s[off:]. It returns the rune and the length of input
// consumed from the start of the first escape.
func decodeSurrogate(s string, off int, hi rune) (rune, int) {
	if off+1 < len(s) && s[off] == '\\' && s[off+1] == 'u' {
		if lo, ok := hexRune(s, off+2, 4); ok {
			if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
				return r, 12
			}
		}
	}
	return utf8.RuneError, 6
}

func hexRune(s string, off, n int) (rune, bool) {
	if off+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[off:off+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
