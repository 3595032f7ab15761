package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/grabbr"
)

// DefaultLoadTimeout bounds navigation and the load event.
const DefaultLoadTimeout = 30 * time.Second

// Ensure Source implements grabbr.DocumentSource at compile time.
var _ grabbr.DocumentSource = (*Source)(nil)

// Source opens live Documents in tabs of a managed browser.
// Source is safe for concurrent use.
type Source struct {
	manager *BrowserManager
	timeout time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLoadTimeout sets the navigation timeout. Defaults to DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) SourceOption {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a Source that opens tabs in manager's browser.
// Closing the Source closes the manager.
func NewSource(manager *BrowserManager, opts ...SourceOption) *Source {
	s := &Source{manager: manager, timeout: DefaultLoadTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open navigates a new tab to url and waits for the load event. The
// returned Document owns the tab; close it with grabbr.ReleaseDocument.
func (s *Source) Open(ctx context.Context, url string) (grabbr.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := s.manager.NewPage()
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p := page.Context(loadCtx)
	if err := p.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}

	return NewDocument(page), nil
}

// Close shuts down the browser.
func (s *Source) Close() error {
	return s.manager.Close()
}
