package stream

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/chatshare"
)

// LookaheadWindow is the maximum number of characters allowed between a
// role marker and the parts array of the same record.
const LookaheadWindow = 2000

const (
	roleMarker  = `"role","`
	partsMarker = `"content_type","text","parts",[`
)

var recordRoles = []chatshare.Role{
	chatshare.RoleAssistant,
	chatshare.RoleUser,
	chatshare.RoleSystem,
}

// Record is one role and parts array found in a payload buffer.
type Record struct {
	Role chatshare.Role

	// Parts is the raw text between the parts array brackets.
	Parts string
}

// MatchRecords returns the non-overlapping records of buf in order. A
// record is a role marker followed, within LookaheadWindow characters, by
// a text parts array; Parts runs to the first closing bracket. Role markers
// without a parts array in range are skipped. Each role marker costs at
// most one window of search, so a scan is linear in len(buf).
func MatchRecords(buf string) []Record {
	m := matcher{buf: buf, closeFrom: -1}
	var records []Record
	pos := 0
	for pos < len(buf) {
		i := strings.Index(buf[pos:], roleMarker)
		if i < 0 {
			break
		}
		start := pos + i

		rec, end, ok := m.matchAt(start + len(roleMarker))
		if !ok {
			pos = start + 1
			continue
		}
		records = append(records, rec)
		pos = end
	}
	return records
}

// matcher caches the last closing bracket lookup so that unterminated
// parts arrays are not rescanned for every role marker.
type matcher struct {
	buf string

	// closeFrom is the offset of the last lookup and closeAt its result,
	// -1 when buf has no bracket at or after closeFrom.
	closeFrom int
	closeAt   int
}

// matchAt matches the remainder of a record after the role marker at
// offset off. It returns the record and the offset just past its closing
// bracket.
func (m *matcher) matchAt(off int) (Record, int, bool) {
	buf := m.buf
	role, ok := matchRole(buf[off:])
	if !ok {
		return Record{}, 0, false
	}
	after := off + len(role) + 1

	limit := min(len(buf), advanceRunes(buf, after, LookaheadWindow)+len(partsMarker))
	j := strings.Index(buf[after:limit], partsMarker)
	if j < 0 {
		return Record{}, 0, false
	}
	contentStart := after + j + len(partsMarker)

	contentEnd := m.closeAfter(contentStart)
	if contentEnd < 0 {
		return Record{}, 0, false
	}

	return Record{Role: role, Parts: buf[contentStart:contentEnd]}, contentEnd + 1, true
}

// closeAfter returns the offset of the first ']' at or after p, or -1.
func (m *matcher) closeAfter(p int) int {
	if m.closeFrom >= 0 && p >= m.closeFrom && (m.closeAt < 0 || p <= m.closeAt) {
		return m.closeAt
	}
	m.closeFrom = p
	m.closeAt = -1
	if k := strings.IndexByte(m.buf[p:], ']'); k >= 0 {
		m.closeAt = p + k
	}
	return m.closeAt
}

// matchRole reports the role whose closing-quoted name prefixes s.
func matchRole(s string) (chatshare.Role, bool) {
	for _, r := range recordRoles {
		if strings.HasPrefix(s, string(r)+`"`) {
			return r, true
		}
	}
	return "", false
}

// advanceRunes returns the byte offset reached after skipping n runes of s
// from off, or len(s) if s ends first.
func advanceRunes(s string, off, n int) int {
	for ; n > 0 && off < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
