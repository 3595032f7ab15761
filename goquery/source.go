package goquery

import (
	"context"
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Ensure Source implements grabbr.DocumentSource at compile time.
var _ grabbr.DocumentSource = (*Source)(nil)

// Source opens static Documents from HTML retrieved by a Fetcher.
type Source struct {
	fetcher grabbr.Fetcher
}

// NewSource creates a Source that fetches pages with f.
func NewSource(f grabbr.Fetcher) *Source {
	return &Source{fetcher: f}
}

// Open fetches url and parses the response into a Document.
func (s *Source) Open(ctx context.Context, url string) (grabbr.Document, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return Parse(page)
}

// Close closes the underlying Fetcher.
func (s *Source) Close() error {
	return s.fetcher.Close()
}
