// Package bloom deduplicates page URLs in batch runs with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers which page URLs a batch run has already queued.
// URLs are normalized first, so https://Example.com/quiz/ and
// https://example.com/quiz#q2 count as the same page.
//
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Normalize(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Normalize(rawURL))
}

// TestAndAdd adds the URL and reports whether it might have been present
// already, as one step.
func (f *Filter) TestAndAdd(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Normalize(rawURL))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Normalize lower-cases scheme and host, drops the fragment and trims a
// trailing slash from the path. Unparseable input is returned unchanged.
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	return u.String()
}
