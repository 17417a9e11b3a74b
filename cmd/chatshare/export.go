package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/etree"
	"github.com/fwojciec/chatshare/export"
	"github.com/fwojciec/chatshare/gofpdf"
	"github.com/fwojciec/chatshare/goldmark"
	"github.com/fwojciec/chatshare/readability"
	"github.com/fwojciec/chatshare/trafilatura"
)

// noMessagesHint is shown when a page yields no turns.
const noMessagesHint = "No messages extracted. Page structure may have changed or the link is not public."

// errorMessage returns the user-facing text for err. Errors from outside
// the application are shown as they are.
func errorMessage(err error) string {
	var e *chatshare.Error
	switch {
	case err == nil:
		return ""
	case chatshare.ErrorCode(err) == chatshare.ENOMESSAGES:
		return noMessagesHint
	case errors.As(err, &e):
		return e.Message
	}
	return err.Error()
}

// encoderFor returns the encoder for an export format.
func encoderFor(format string) (chatshare.Encoder, error) {
	switch format {
	case "csv":
		return export.NewCSVEncoder(), nil
	case "json":
		return export.NewJSONEncoder(), nil
	case "md":
		return export.NewMarkdownEncoder(), nil
	case "xml":
		return etree.NewXMLEncoder(), nil
	case "html":
		return goldmark.NewHTMLEncoder(), nil
	case "pdf":
		return gofpdf.NewPDFEncoder(), nil
	}
	return nil, chatshare.Errorf(chatshare.EINVALID, "unknown format %q", format)
}

// extractorFor returns the title extractor by name, or nil for "none".
func extractorFor(name string) chatshare.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "none":
		return nil
	}
	return trafilatura.NewExtractor()
}

// save writes c in the requested format, prints where it went with a
// summary, and archives it when asked.
func save(deps *Dependencies, flags ExportFlags, c *chatshare.Conversation) error {
	enc, err := encoderFor(flags.Format)
	if err != nil {
		return err
	}

	path, err := deps.Exports.WriteExport(c, enc)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", c.SourceURL, err)
	}
	fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
	printStats(deps.Stdout, c)

	if !flags.Archive {
		return nil
	}
	switch err := deps.Conversations.CreateConversation(deps.Ctx, c); {
	case chatshare.ErrorCode(err) == chatshare.ECONFLICT:
		fmt.Fprintf(deps.Stdout, "  Already archived: %s\n", chatshare.ErrorMessage(err))
	case err != nil:
		return err
	default:
		fmt.Fprintf(deps.Stdout, "  Archived as %s\n", c.ID)
	}
	return nil
}

func printStats(w io.Writer, c *chatshare.Conversation) {
	s := c.Stats()
	if c.Title != "" {
		fmt.Fprintf(w, "  Title: %s\n", c.Title)
	}
	fmt.Fprintf(w, "  Turns: %d (user %d, assistant %d, system %d)\n", s.Total, s.User, s.Assistant, s.System)
	fmt.Fprintf(w, "  Characters: %d\n", s.Characters)
	fmt.Fprintf(w, "  Strategy: %s\n", c.Strategy)
}
