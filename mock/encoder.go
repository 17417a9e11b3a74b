package mock

import (
	"io"

	"github.com/fwojciec/chatshare"
)

var _ chatshare.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of chatshare.Encoder.
type Encoder struct {
	EncodeFn    func(w io.Writer, c *chatshare.Conversation) error
	ExtensionFn func() string
}

func (e *Encoder) Encode(w io.Writer, c *chatshare.Conversation) error {
	return e.EncodeFn(w, c)
}

func (e *Encoder) Extension() string {
	return e.ExtensionFn()
}

var _ chatshare.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of chatshare.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(c *chatshare.Conversation, enc chatshare.Encoder) (string, error)
}

func (w *ExportWriter) WriteExport(c *chatshare.Conversation, enc chatshare.Encoder) (string, error) {
	return w.WriteExportFn(c, enc)
}
