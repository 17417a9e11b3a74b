// Package gofpdf renders conversations as simple PDF documents.
package gofpdf

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/export"
	"github.com/jung-kurt/gofpdf"
)

// Ensure PDFEncoder implements chatshare.Encoder at compile time.
var _ chatshare.Encoder = (*PDFEncoder)(nil)

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// PDFEncoder lays out the markdown form of a conversation line by line.
// Headings get a larger bold font and markdown links become clickable; the
// rest is written as plain paragraphs.
type PDFEncoder struct {
	markdown *export.MarkdownEncoder
}

// NewPDFEncoder creates a new PDFEncoder.
func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{markdown: export.NewMarkdownEncoder()}
}

// Encode writes an A4 PDF to w.
func (e *PDFEncoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	var src bytes.Buffer
	if err := e.markdown.Encode(&src, c); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(c.Title, true)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(&src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		writeLine(pdf, tr, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return chatshare.Errorf(chatshare.EINTERNAL, "failed to lay out PDF: %v", err)
	}

	if err := pdf.Output(w); err != nil {
		return chatshare.Errorf(chatshare.EINTERNAL, "failed to write PDF: %v", err)
	}
	return nil
}

// Extension returns "pdf".
func (e *PDFEncoder) Extension() string {
	return "pdf"
}

func writeLine(pdf *gofpdf.Fpdf, tr func(string) string, line string) {
	s := strings.TrimSpace(line)
	if s == "" {
		pdf.Ln(5)
		return
	}

	if strings.HasPrefix(s, "#") {
		level := 0
		for level < len(s) && s[level] == '#' {
			level++
		}
		text := strings.TrimSpace(s[level:])
		if text == "" {
			return
		}
		size := 14.0
		if level >= 2 {
			size = 12.0
		}
		pdf.SetFont("Helvetica", "B", size)
		pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		return
	}

	matches := linkPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		pdf.MultiCell(0, 5, tr(s), "", "L", false)
		return
	}

	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			pdf.Write(5, tr(s[pos:m[0]]))
		}
		text, url := s[m[2]:m[3]], s[m[4]:m[5]]
		if strings.HasPrefix(url, "#") {
			pdf.Write(5, tr(text))
		} else {
			pdf.WriteLinkString(5, tr(text), url)
		}
		pos = m[1]
	}
	if pos < len(s) {
		pdf.Write(5, tr(s[pos:]))
	}
	pdf.Ln(6)
}
