package gofpdf_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFEncoder(t *testing.T) {
	t.Parallel()

	t.Run("writes a PDF document", func(t *testing.T) {
		t.Parallel()

		c := &chatshare.Conversation{
			Title:     "Loops",
			SourceURL: "https://chatgpt.com/share/abc",
			Turns: []chatshare.Turn{
				{Number: 1, Role: chatshare.RoleUser, Text: "How do I loop?"},
				{Number: 2, Role: chatshare.RoleAssistant, Markdown: "See [the tour](https://go.dev/tour) or [below](#x).\n\n# Heading\n\nCafé"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, gofpdf.NewPDFEncoder().Encode(&buf, c))

		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Contains(t, buf.String(), "%%EOF")
		assert.Contains(t, buf.String(), "https://go.dev/tour")
	})

	t.Run("uses pdf extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "pdf", gofpdf.NewPDFEncoder().Extension())
	})
}
