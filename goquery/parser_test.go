package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/goquery"
	"github.com/fwojciec/chatshare/htmltomarkdown"
	"github.com/fwojciec/chatshare/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser() *goquery.Parser {
	return goquery.NewParser(htmltomarkdown.NewConverter())
}

func TestParser_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dom", newParser().Name())
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts structured user and assistant turns", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div data-message-author-role="user"><div class="markdown">Hello</div></div>
<div data-message-author-role="assistant"><div class="markdown prose">Hi there</div></div>
</body></html>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 2)

		assert.Equal(t, 1, turns[0].Number)
		assert.Equal(t, chatshare.RoleUser, turns[0].Role)
		assert.Equal(t, "Hello", turns[0].Text)
		assert.Equal(t, "Hello", turns[0].Markdown)

		assert.Equal(t, 2, turns[1].Number)
		assert.Equal(t, chatshare.RoleAssistant, turns[1].Role)
		assert.Equal(t, "Hi there", turns[1].Text)
		assert.Equal(t, "Hi there", turns[1].Markdown)
	})

	t.Run("keeps raw markup of the located body", func(t *testing.T) {
		t.Parallel()

		html := `<div data-message-author-role="user"><div data-testid="markdown"><p>Hi</p></div></div>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, `<div data-testid="markdown"><p>Hi</p></div>`, turns[0].RawHTML)
	})

	t.Run("removes repeated turns anywhere in the page", func(t *testing.T) {
		t.Parallel()

		html := `
<div data-message-author-role="user"><div>Question</div></div>
<div data-message-author-role="assistant"><div>Answer</div></div>
<div data-message-author-role="user"><div>Question</div></div>
<div data-message-author-role="assistant"><div>Answer</div></div>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, "Question", turns[0].Text)
		assert.Equal(t, "Answer", turns[1].Text)
		assert.Equal(t, 2, turns[1].Number)
	})

	t.Run("drops empty nodes and numbers survivors contiguously", func(t *testing.T) {
		t.Parallel()

		html := `
<div data-message-author-role="user"><div>First</div></div>
<div data-message-author-role="assistant"><div>   </div></div>
<div data-message-author-role="assistant"><div>Second</div></div>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, 1, turns[0].Number)
		assert.Equal(t, 2, turns[1].Number)
		assert.Equal(t, "Second", turns[1].Text)
	})

	t.Run("falls back to article elements", func(t *testing.T) {
		t.Parallel()

		html := `
<article><div>What is Go?</div></article>
<article><div class="markdown"><p>A programming language.</p></div></article>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, chatshare.RoleAssistant, turns[0].Role)
		assert.Equal(t, "What is Go?", turns[0].Text)
		assert.Equal(t, "A programming language.", turns[1].Text)
	})

	t.Run("ignores articles when role nodes exist", func(t *testing.T) {
		t.Parallel()

		html := `
<article><div>sidebar</div></article>
<div data-message-author-role="user"><div>real</div></div>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, "real", turns[0].Text)
	})

	t.Run("extracts code blocks links and images", func(t *testing.T) {
		t.Parallel()

		html := `<div data-message-author-role="assistant"><div class="markdown">
<p>See <a href="https://go.dev">Go</a> and <a href="/local">here</a>.</p>
<pre><code class="language-go">fmt.Println("hi")
</code></pre>
<img src="https://img.example/a.png" alt="diagram">
</div></div>`

		turns, err := newParser().Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 1)

		turn := turns[0]
		assert.Equal(t, []string{`fmt.Println("hi")`}, turn.CodeBlocks)
		assert.Equal(t, []string{"https://go.dev"}, turn.Links)
		assert.Equal(t, []string{"https://img.example/a.png"}, turn.Images)
		assert.Contains(t, turn.Markdown, "[Go](https://go.dev)")
		assert.Contains(t, turn.Markdown, "![diagram](https://img.example/a.png)")
	})

	t.Run("returns empty result for page without messages", func(t *testing.T) {
		t.Parallel()

		turns, err := newParser().Parse(`<html><body><p>Not found</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, turns)
	})

	t.Run("leaves markdown empty when conversion fails", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}
		html := `<div data-message-author-role="user"><div>Still here</div></div>`

		turns, err := goquery.NewParser(conv).Parse(html)

		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, "Still here", turns[0].Text)
		assert.Empty(t, turns[0].Markdown)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `
<div data-message-author-role="user"><div>a <a href="https://x.example">x</a></div></div>
<div data-message-author-role="assistant"><div>b</div></div>`

		p := newParser()
		first, err := p.Parse(html)
		require.NoError(t, err)
		second, err := p.Parse(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
