package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/grabbr"
)

// Ensure LoggingExtractor implements grabbr.Extractor.
var _ grabbr.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Nodes the scan had to
// skip are logged at warn level.
type LoggingExtractor struct {
	next   grabbr.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next grabbr.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, doc grabbr.Document, mode grabbr.Mode, opts grabbr.Options) (res *grabbr.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"mode", mode,
			"format", opts.Format,
			"duration", time.Since(begin),
			"err", err,
		}
		if res != nil {
			attrs = append(attrs,
				"candidates", res.Candidates,
				"items", len(res.Items),
				"theme", res.Theme,
			)
			if res.Skipped > 0 {
				e.logger.Warn("unmeasurable nodes skipped", "skipped", res.Skipped)
			}
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, doc, mode, opts)
}
