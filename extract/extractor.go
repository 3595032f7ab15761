package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/grabbr"
)

// DefaultSettleDelay is how long Extract waits after opening disclosure
// widgets so reveal transitions can finish before the scan.
const DefaultSettleDelay = 150 * time.Millisecond

// Ensure Extractor implements grabbr.Extractor at compile time.
var _ grabbr.Extractor = (*Extractor)(nil)

// Extractor runs the extraction pipeline: expand, scan, sort, filter by
// mode, post-process, then group or format. Extractor holds no per-call
// state and is safe for concurrent use on independent documents.
type Extractor struct {
	// SettleDelay is waited after Expand toggles at least one widget.
	SettleDelay time.Duration
}

// NewExtractor creates an Extractor with the default settle delay.
func NewExtractor() *Extractor {
	return &Extractor{SettleDelay: DefaultSettleDelay}
}

// Extract runs one extraction call over doc. Any failure, including a
// panic in a pipeline stage, is returned as an error with no result.
func (e *Extractor) Extract(ctx context.Context, doc grabbr.Document, mode grabbr.Mode, opts grabbr.Options) (res *grabbr.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = grabbr.Errorf(grabbr.EINTERNAL, "extraction failed: %v", r)
		}
	}()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := e.expand(ctx, doc); err != nil {
		return nil, err
	}

	scanned, err := Scan(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	candidates := scanned.Candidates
	grabbr.SortReadingOrder(candidates)
	candidates = grabbr.FilterByMode(candidates, mode)
	candidates = grabbr.PostProcess(candidates, opts)

	res = &grabbr.Result{
		Format:     grabbr.FormatText,
		Theme:      DetectTheme(ctx, doc),
		Candidates: len(candidates),
		Skipped:    scanned.Skipped,
	}
	if opts.Format == grabbr.FormatJSON {
		res.Format = grabbr.FormatJSON
		res.Items = grabbr.Group(candidates)
	} else {
		res.Text = grabbr.FormatTranscript(candidates)
	}
	return res, nil
}

// expand opens disclosure widgets and waits for layout to settle if any
// were toggled.
func (e *Extractor) expand(ctx context.Context, doc grabbr.Document) error {
	toggled, err := doc.Expand(ctx)
	if err != nil {
		return fmt.Errorf("expanding disclosure widgets: %w", err)
	}
	if toggled == 0 || e.SettleDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(e.SettleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DetectTheme classifies the page background as light or dark, falling
// back to the host's preference and finally to dark.
func DetectTheme(ctx context.Context, doc grabbr.Document) grabbr.Theme {
	if bg, err := doc.Background(ctx); err == nil {
		if theme := grabbr.ThemeForBackground(bg); theme != grabbr.ThemeUnknown {
			return theme
		}
	}
	if theme := doc.PreferredScheme(ctx); theme != grabbr.ThemeUnknown {
		return theme
	}
	return grabbr.ThemeDark
}
