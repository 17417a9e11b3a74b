package chatshare

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// Implementations keep images and emphasis, render links inline and
	// never wrap lines. The result is trimmed.
	Convert(html string) (string, error)
}
