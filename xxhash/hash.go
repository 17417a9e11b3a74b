// Package xxhash fingerprints conversation content with xxHash64.
package xxhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/chatshare"
)

// ContentHash fingerprints the role and text of turns, in order. Equal
// conversations fetched at different times hash the same.
func ContentHash(turns []chatshare.Turn) string {
	d := xxhash.New()
	for _, t := range turns {
		_, _ = d.WriteString(string(t.Role))
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(t.Text)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%x", d.Sum64())
}
