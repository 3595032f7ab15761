package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/batch"
	"github.com/fwojciec/grabbr/fs"
	"github.com/fwojciec/grabbr/goquery"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	mode, opts, err := c.resolve(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}
	exporter, err := exporterFor(c.Format, opts, deps.Config.Study)
	if err != nil {
		return err
	}

	urls := c.URLs
	if c.Index != "" {
		page, err := deps.Fetcher.Fetch(deps.Ctx, c.Index)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: could not fetch index %s: %v\n", c.Index, err)
			return err
		}
		links, err := goquery.ExtractLinks(page, c.Index, c.Selector)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d pages linked from %s\n", len(links), c.Index)
		urls = append(urls, links...)
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no pages to extract; pass URLs or --index")
		return grabbr.Errorf(grabbr.EINVALID, "no pages to extract")
	}

	abs, err := filepath.Abs(c.Out)
	if err != nil {
		return err
	}
	store := fs.NewExportStore(filepath.Dir(abs), filepath.Base(abs), exporter)

	runner := &batch.Runner{
		Source:      deps.Source,
		Extractor:   deps.Extractor,
		Saver:       store,
		RateLimiter: batch.NewDomainLimiter(c.RPS, batch.WithBurst(c.Burst)),
		Concurrency: c.Concurrency,
		Mode:        mode,
		Options:     opts,
	}

	res, err := runner.Run(deps.Ctx, urls, func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s (%d items)\n", e.Completed, e.Total, batch.TruncateURL(e.URL, 60), e.Items)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s failed: %v\n", e.Completed, e.Total, batch.TruncateURL(e.URL, 60), e.Error)
		}
	})
	if err != nil {
		_ = store.Abort()
		return err
	}

	if res.Extracted == 0 {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: all %d pages failed\n", res.Failed)
		return grabbr.Errorf(grabbr.EINTERNAL, "all pages failed")
	}

	if err := store.Commit(); err != nil {
		return fmt.Errorf("committing exports: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d pages (%d items) to %s", res.Extracted, res.Items, store.Dir())
	if res.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", res.Failed)
	}
	if res.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, ", %d duplicate URLs skipped", res.Duplicates)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
