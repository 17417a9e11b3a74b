package chatshare

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor extracts page metadata and main content from HTML.
// Conversations only use the title.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
