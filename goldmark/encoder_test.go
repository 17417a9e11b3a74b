package goldmark_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLEncoder(t *testing.T) {
	t.Parallel()

	t.Run("renders turns as HTML sections", func(t *testing.T) {
		t.Parallel()

		c := &chatshare.Conversation{
			Title: "Loops",
			Turns: []chatshare.Turn{
				{Number: 1, Role: chatshare.RoleUser, Markdown: "How do I **loop**?"},
				{Number: 2, Role: chatshare.RoleAssistant, Markdown: "```go\nfor {}\n```"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, goldmark.NewHTMLEncoder().Encode(&buf, c))

		out := buf.String()
		assert.Contains(t, out, "<title>Loops</title>")
		assert.Contains(t, out, "<h1>Loops</h1>")
		assert.Contains(t, out, "<h2>1. user</h2>")
		assert.Contains(t, out, "<strong>loop</strong>")
		assert.Contains(t, out, `<code class="language-go">for {}`)
	})

	t.Run("omits raw markup in turns and escapes title", func(t *testing.T) {
		t.Parallel()

		c := &chatshare.Conversation{
			Title: "<b>x</b>",
			Turns: []chatshare.Turn{
				{Number: 1, Role: chatshare.RoleUser, Markdown: "<script>alert(1)</script>"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, goldmark.NewHTMLEncoder().Encode(&buf, c))

		assert.NotContains(t, buf.String(), "<script>")
		assert.Contains(t, buf.String(), "<title>&lt;b&gt;x&lt;/b&gt;</title>")
	})

	t.Run("uses html extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "html", goldmark.NewHTMLEncoder().Extension())
	})
}
