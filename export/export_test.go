package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation() *chatshare.Conversation {
	return &chatshare.Conversation{
		SourceURL: "https://chatgpt.com/share/abc",
		Title:     "Loops",
		Turns: []chatshare.Turn{
			{
				Number:     2,
				Role:       chatshare.RoleAssistant,
				Text:       "Use a for loop x=1 y=2",
				Markdown:   "Use a **for** loop\n\n```go\nx=1\n```\n\n```\ny=2\n```",
				CodeBlocks: []string{"x=1", "y=2"},
				Links:      []string{"https://go.dev", "mailto:a@b.c"},
				RawHTML:    "<p>Use a <strong>for</strong> loop</p>",
			},
			{
				Number:   1,
				Role:     chatshare.RoleUser,
				Text:     "How do I loop, \"quickly\"?",
				Markdown: "How do I loop, \"quickly\"?",
			},
		},
	}
}

func TestCSVEncoder(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows ordered by turn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewCSVEncoder().Encode(&buf, conversation())
		require.NoError(t, err)

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"turn", "role", "text", "markdown", "code_blocks", "links", "images", "raw_html"}, records[0])
		assert.Equal(t, "1", records[1][0])
		assert.Equal(t, "user", records[1][1])
		assert.Equal(t, `How do I loop, "quickly"?`, records[1][2])
		assert.Equal(t, "2", records[2][0])
		assert.Equal(t, "x=1 |SEP| y=2", records[2][4])
		assert.Equal(t, "https://go.dev |SEP| mailto:a@b.c", records[2][5])
		assert.Equal(t, "", records[2][6])
		assert.Equal(t, "<p>Use a <strong>for</strong> loop</p>", records[2][7])
	})

	t.Run("writes only header for conversation without turns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewCSVEncoder().Encode(&buf, &chatshare.Conversation{})

		require.NoError(t, err)
		assert.Equal(t, "turn,role,text,markdown,code_blocks,links,images,raw_html\n", buf.String())
	})

	t.Run("does not reorder caller's turns", func(t *testing.T) {
		t.Parallel()

		c := conversation()
		require.NoError(t, export.NewCSVEncoder().Encode(&bytes.Buffer{}, c))

		assert.Equal(t, 2, c.Turns[0].Number)
	})

	t.Run("uses csv extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "csv", export.NewCSVEncoder().Extension())
	})
}

func TestJSONEncoder(t *testing.T) {
	t.Parallel()

	t.Run("writes indented array of turns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewJSONEncoder().Encode(&buf, conversation())
		require.NoError(t, err)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.InDelta(t, 1, got[0]["turn"], 0)
		assert.Equal(t, "assistant", got[1]["role"])
		assert.Equal(t, []any{"x=1", "y=2"}, got[1]["code_blocks"])
		assert.Contains(t, buf.String(), "\n  {\n    \"turn\": 1,")
	})

	t.Run("writes empty lists as arrays", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewJSONEncoder().Encode(&buf, conversation())
		require.NoError(t, err)

		assert.Contains(t, buf.String(), `"images": []`)
		assert.NotContains(t, buf.String(), "null")
	})

	t.Run("keeps markup unescaped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewJSONEncoder().Encode(&buf, conversation())
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "<strong>for</strong>")
	})

	t.Run("uses json extension", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "json", export.NewJSONEncoder().Extension())
	})
}

func TestMarkdownEncoder(t *testing.T) {
	t.Parallel()

	t.Run("writes one section per turn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := export.NewMarkdownEncoder().Encode(&buf, conversation())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "# Loops\n\nSource: <https://chatgpt.com/share/abc>\n\n")
		assert.Contains(t, out, "## 1. user\n\n")
		assert.Contains(t, out, "## 2. assistant\n\nUse a **for** loop")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("## 1.")), bytes.Index(buf.Bytes(), []byte("## 2.")))
	})

	t.Run("falls back to text and default title", func(t *testing.T) {
		t.Parallel()

		c := &chatshare.Conversation{Turns: []chatshare.Turn{
			{Number: 1, Role: chatshare.RoleUser, Text: "plain only"},
		}}

		var buf bytes.Buffer
		require.NoError(t, export.NewMarkdownEncoder().Encode(&buf, c))

		assert.Equal(t, "# Untitled Conversation\n\n## 1. user\n\nplain only\n\n", buf.String())
	})
}
