package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/grabbr"
)

// Ensure Fetcher implements grabbr.Fetcher at compile time.
var _ grabbr.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML after scripts have run, for discovering links on
// index pages that render client-side.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a Fetcher that renders pages in manager's browser.
// Closing the Fetcher closes the manager.
func NewFetcher(manager *BrowserManager) *Fetcher {
	return &Fetcher{manager: manager}
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	return page.HTML()
}

// Close shuts down the browser.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
