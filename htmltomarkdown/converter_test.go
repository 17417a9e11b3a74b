package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<div class="markdown">

<p>Hello</p>

</div>`)

		require.NoError(t, err)
		assert.Equal(t, "Hello", md)
	})

	t.Run("keeps links inline", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Read <a href="https://go.dev/doc">the docs</a> first.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Read [the docs](https://go.dev/doc) first.", md)
	})

	t.Run("keeps images", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><img src="https://img.example/chart.png" alt="chart"></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "![chart](https://img.example/chart.png)")
	})

	t.Run("uses asterisks for emphasis", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><strong>Note</strong> this is <em>important</em>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Note**")
		assert.Contains(t, md, "*important*")
	})

	t.Run("does not wrap long lines", func(t *testing.T) {
		t.Parallel()

		sentence := strings.TrimSpace(strings.Repeat("word ", 60))
		md, err := htmltomarkdown.NewConverter().Convert("<p>" + sentence + "</p>")

		require.NoError(t, err)
		assert.Equal(t, sentence, md)
	})

	t.Run("renders fenced code with language", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<pre><code class="language-python">print("hi")
</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```python")
		assert.Contains(t, md, `print("hi")`)
		assert.Equal(t, []string{`print("hi")`}, chatshare.ExtractCodeBlocks(md))
	})

	t.Run("renders inline code", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Use <code>go test ./...</code> here.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "`go test ./...`")
	})

	t.Run("renders tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table>
<thead><tr><th>Model</th><th>Tokens</th></tr></thead>
<tbody><tr><td>small</td><td>8k</td></tr></tbody>
</table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Model")
		assert.Contains(t, md, "small")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("renders lists and headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h2>Steps</h2><ol><li>Install</li><li>Run</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Steps")
		assert.Contains(t, md, "1. Install")
		assert.Contains(t, md, "2. Run")
	})

	t.Run("returns EINVALID for blank input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.Error(t, err)
		assert.Equal(t, chatshare.EINVALID, chatshare.ErrorCode(err))
	})
}
