package main

import (
	"fmt"
	"os"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	markup, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	sourceURL := c.SourceURL
	if sourceURL == "" {
		sourceURL = c.File
	}

	conv, err := deps.Shares.ParseHTML(sourceURL, string(markup))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	return save(deps, c.ExportFlags, conv)
}
