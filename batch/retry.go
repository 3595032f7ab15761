package batch

import (
	"context"
	"time"

	"github.com/fwojciec/grabbr"
)

// DefaultRetryDelays returns the backoff delays for open retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// OpenWithRetry opens url with one attempt per delay plus the first, waiting
// between attempts. Application errors such as ENOTFOUND or EINVALID are
// returned at once since retrying cannot fix them.
func OpenWithRetry(ctx context.Context, src grabbr.DocumentSource, url string, delays []time.Duration) (grabbr.Document, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := src.Open(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if grabbr.ErrorCode(err) != grabbr.EINTERNAL || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
