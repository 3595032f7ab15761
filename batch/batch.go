// Package batch extracts study content from many pages concurrently.
//
// Every page is an independent extraction call: pages share no state
// besides the rate limiter, so one page failing never affects another.
package batch

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/bloom"
	"golang.org/x/sync/errgroup"
)

// Defaults for Runner fields left zero.
const (
	DefaultConcurrency = 4

	// dedupFalsePositiveRate bounds how often a distinct URL is mistaken
	// for a duplicate.
	dedupFalsePositiveRate = 0.0001
)

// Saver persists the items extracted from one page.
type Saver interface {
	Save(ctx context.Context, pageURL string, items []grabbr.Item) error
}

// Runner extracts a list of pages.
type Runner struct {
	Source      grabbr.DocumentSource
	Extractor   grabbr.Extractor
	Saver       Saver   // optional
	RateLimiter Limiter // optional
	Concurrency int
	RetryDelays []time.Duration

	Mode    grabbr.Mode
	Options grabbr.Options
}

// PageResult is the outcome of one page.
type PageResult struct {
	URL    string
	Result *grabbr.Result
	Err    error
}

// Result holds the outcome of a batch run. Pages are in input order with
// duplicates removed.
type Result struct {
	Pages      []PageResult
	Extracted  int
	Failed     int
	Duplicates int
	Items      int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Items     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is called
// from one goroutine at a time.
type ProgressFunc func(event ProgressEvent)

// Run extracts every distinct URL in urls. Per-page failures are recorded
// in the result; Run itself fails only when ctx is canceled.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	opts := r.Options
	// Savers and callers need structured items regardless of display format.
	opts.Format = grabbr.FormatJSON

	res := &Result{}
	pages := dedup(urls)
	res.Duplicates = len(urls) - len(pages)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	total := len(pages)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan indexedResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range pages {
			g.Go(func() error {
				resultCh <- indexedResult{i, r.processURL(gctx, u, opts, delays)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	res.Pages = make([]PageResult, total)
	var completed atomic.Int64
	for ir := range resultCh {
		n := int(completed.Add(1))
		res.Pages[ir.index] = ir.page

		event := ProgressEvent{Completed: n, Total: total, URL: ir.page.URL}
		if ir.page.Err != nil {
			res.Failed++
			event.Type = ProgressFailed
			event.Error = ir.page.Err
		} else {
			res.Extracted++
			res.Items += len(ir.page.Result.Items)
			event.Type = ProgressCompleted
			event.Items = len(ir.page.Result.Items)
		}
		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

type indexedResult struct {
	index int
	page  PageResult
}

// processURL runs one independent extraction call.
func (r *Runner) processURL(ctx context.Context, pageURL string, opts grabbr.Options, delays []time.Duration) PageResult {
	page := PageResult{URL: pageURL}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, pageURL); err != nil {
			page.Err = err
			return page
		}
	}

	doc, err := OpenWithRetry(ctx, r.Source, pageURL, delays)
	if err != nil {
		page.Err = err
		return page
	}
	defer grabbr.ReleaseDocument(doc)

	result, err := r.Extractor.Extract(ctx, doc, r.Mode, opts)
	if err != nil {
		page.Err = err
		return page
	}

	if r.Saver != nil {
		if err := r.Saver.Save(ctx, pageURL, result.Items); err != nil {
			page.Err = err
			return page
		}
	}

	page.Result = result
	return page
}

// dedup drops repeated URLs, keeping first occurrences in order.
func dedup(urls []string) []string {
	seen := bloom.NewFilter(uint(max(len(urls), 1)), dedupFalsePositiveRate)
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.TestAndAdd(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
