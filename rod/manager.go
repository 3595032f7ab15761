// Package rod implements grabbr.Document and grabbr.Fetcher on a live
// headless Chrome driven by go-rod, for pages that build their content with
// JavaScript.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of pages opened before the
// browser is replaced.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and replaces it after a
// fixed number of pages. Long batch runs otherwise see Chrome's resident
// memory grow without bound.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages    atomic.Int64
	maxPages int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are opened before the browser is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome.
// Close must be called when the BrowserManager is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// NewPage opens a blank tab, replacing the browser first if it has served
// its page budget. The caller owns the page and must close it.
func (bm *BrowserManager) NewPage() (*rod.Page, error) {
	if bm.closed.Load() {
		return nil, fmt.Errorf("browser manager closed")
	}

	bm.mu.Lock()
	if bm.pages.Load() >= bm.maxPages {
		bm.recycle()
	}
	browser := bm.browser
	bm.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	bm.pages.Add(1)
	return page, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.shutdown()
}

// launch starts a browser with flags that keep background tabs from being
// throttled.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown closes the current browser and kills its process.
// Must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser. If the new launch fails the old
// browser stays in service.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pages.Store(0)
}

// PageCount returns how many pages the current browser has opened.
func (bm *BrowserManager) PageCount() int64 {
	return bm.pages.Load()
}
