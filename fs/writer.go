// Package fs provides file-based storage for conversation exports.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/chatshare"
)

// ExportPath returns the path of an export relative to the output root:
// YYYY/YYYY-MM/YYYYMMDD_HHMM_chatgpt_share_<id>.<ext>.
func ExportPath(shareID string, t time.Time, ext string) string {
	name := fmt.Sprintf("%s_chatgpt_share_%s.%s", t.Format("20060102_1504"), shareID, ext)
	return filepath.Join(t.Format("2006"), t.Format("2006-01"), name)
}

// Ensure Writer implements chatshare.ExportWriter at compile time.
var _ chatshare.ExportWriter = (*Writer)(nil)

// Writer writes encoded conversations below a base directory.
// Each file is written to a temporary name and renamed into place, so
// readers never see a partial export.
type Writer struct {
	baseDir string

	// Now is used when a conversation has no fetch time. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, Now: time.Now}
}

// WriteExport encodes c and stores it at its ExportPath. The timestamp in
// the path is the conversation's fetch time.
func (w *Writer) WriteExport(c *chatshare.Conversation, enc chatshare.Encoder) (string, error) {
	if c.ShareID == "" {
		return "", chatshare.Errorf(chatshare.EINVALID, "conversation share ID required")
	}

	ts := c.FetchedAt
	if ts.IsZero() {
		ts = w.Now()
	}

	fullPath := filepath.Join(w.baseDir, ExportPath(c.ShareID, ts, enc.Extension()))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := enc.Encode(tmp, c); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding %s: %w", enc.Extension(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	// Atomically rename temp to final
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
