package main

import (
	"fmt"

	"github.com/fwojciec/chatshare"
)

// Run executes the fetch command. Every link is attempted; the command
// fails if any of them could not be exported.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if _, err := encoderFor(c.Format); err != nil {
		return err
	}

	results := deps.Shares.FetchAll(deps.Ctx, c.URLs, func(p chatshare.FetchProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: error: %s\n", p.Completed, p.Total, p.URL, errorMessage(p.Error))
			return
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %d turns\n", p.Completed, p.Total, p.URL, p.Turns)
	})

	var failed []error
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
			continue
		}
		if err := save(deps, c.ExportFlags, r.Conversation); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			failed = append(failed, err)
		}
	}

	switch {
	case len(failed) == 0:
		return nil
	case len(results) == 1:
		return failed[0]
	default:
		return fmt.Errorf("%d of %d share links failed", len(failed), len(results))
	}
}
