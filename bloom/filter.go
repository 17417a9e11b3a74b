// Package bloom provides share URL deduplication for batch fetches using
// Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/chatshare"
)

// Ensure Filter implements chatshare.URLSet at compile time.
var _ chatshare.URLSet = (*Filter)(nil)

// DefaultFalsePositiveRate is the false positive rate used by NewURLSet.
const DefaultFalsePositiveRate = 0.001

// Filter remembers share URLs in a Bloom filter. URLs are compared in
// canonical form, so http/https, "www." and tracking parameters do not
// make a link look new. A false positive skips a URL that was never seen.
//
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewURLSet creates a Filter sized for a batch of n URLs.
func NewURLSet(n int) *Filter {
	return NewFilter(uint(max(n, 1)), DefaultFalsePositiveRate)
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(chatshare.CanonicalShareURL(url))
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(chatshare.CanonicalShareURL(url))
}

// TestAndAdd reports whether the URL might have been added before, then
// adds it.
func (f *Filter) TestAndAdd(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(chatshare.CanonicalShareURL(url))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
