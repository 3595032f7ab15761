package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/grabbr"
)

// Ensure LoggingSource implements grabbr.DocumentSource.
var _ grabbr.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with logging.
type LoggingSource struct {
	next   grabbr.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next grabbr.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Open logs the page being opened and delegates to the wrapped source.
func (s *LoggingSource) Open(ctx context.Context, url string) (doc grabbr.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Open(ctx, url)
}

// Close delegates to the wrapped source.
func (s *LoggingSource) Close() error {
	return s.next.Close()
}
