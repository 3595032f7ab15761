package batch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/batch"
	"github.com/fwojciec/grabbr/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closingDocument records whether the runner released it.
type closingDocument struct {
	*mock.Document
	closed atomic.Bool
}

func (d *closingDocument) Close() error {
	d.closed.Store(true)
	return nil
}

func itemsFor(url string) []grabbr.Item {
	return []grabbr.Item{&grabbr.QuestionGroup{Question: "From " + url + "?"}}
}

// newRunner returns a runner whose extractor yields one item per page and
// whose source fails for URLs in failing.
func newRunner(failing map[string]error) *batch.Runner {
	return &batch.Runner{
		Source: &mock.DocumentSource{
			OpenFn: func(_ context.Context, url string) (grabbr.Document, error) {
				if err, ok := failing[url]; ok {
					return nil, err
				}
				return &mock.Document{PreferredSchemeFn: func(context.Context) grabbr.Theme { return grabbr.Theme(url) }}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(ctx context.Context, doc grabbr.Document, _ grabbr.Mode, opts grabbr.Options) (*grabbr.Result, error) {
				url := string(doc.PreferredScheme(ctx))
				return &grabbr.Result{Format: opts.Format, Items: itemsFor(url)}, nil
			},
		},
		Concurrency: 2,
		RetryDelays: []time.Duration{0},
		Mode:        grabbr.ModeFull,
		Options:     grabbr.DefaultOptions(),
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts every page in input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example.com/1", "https://b.example.com/2", "https://a.example.com/3"}

		res, err := newRunner(nil).Run(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Extracted)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, 3, res.Items)
		require.Len(t, res.Pages, 3)
		for i, p := range res.Pages {
			assert.Equal(t, urls[i], p.URL)
			assert.Equal(t, itemsFor(urls[i]), p.Result.Items)
		}
	})

	t.Run("forces structured output", func(t *testing.T) {
		t.Parallel()

		r := newRunner(nil)
		r.Options.Format = grabbr.FormatText

		res, err := r.Run(context.Background(), []string{"https://example.com/quiz"}, nil)

		require.NoError(t, err)
		assert.Equal(t, grabbr.FormatJSON, res.Pages[0].Result.Format)
	})

	t.Run("drops duplicate URLs", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/quiz", "https://example.com/quiz/", "https://example.com/quiz#q3", "https://example.com/notes"}

		res, err := newRunner(nil).Run(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Duplicates)
		require.Len(t, res.Pages, 2)
		assert.Equal(t, "https://example.com/quiz", res.Pages[0].URL)
		assert.Equal(t, "https://example.com/notes", res.Pages[1].URL)
	})

	t.Run("records failures without affecting other pages", func(t *testing.T) {
		t.Parallel()

		r := newRunner(map[string]error{
			"https://example.com/gone": grabbr.Errorf(grabbr.ENOTFOUND, "HTTP 404"),
		})

		res, err := r.Run(context.Background(), []string{"https://example.com/gone", "https://example.com/quiz"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, 1, res.Extracted)
		assert.Equal(t, grabbr.ENOTFOUND, grabbr.ErrorCode(res.Pages[0].Err))
		assert.Nil(t, res.Pages[0].Result)
		assert.NoError(t, res.Pages[1].Err)
	})

	t.Run("records extraction failures", func(t *testing.T) {
		t.Parallel()

		r := newRunner(nil)
		r.Extractor = &mock.Extractor{
			ExtractFn: func(context.Context, grabbr.Document, grabbr.Mode, grabbr.Options) (*grabbr.Result, error) {
				return nil, grabbr.Errorf(grabbr.EINTERNAL, "extraction failed")
			},
		}

		res, err := r.Run(context.Background(), []string{"https://example.com/quiz"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, 0, res.Items)
	})

	t.Run("saves items through saver", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		saved := map[string][]grabbr.Item{}
		r := newRunner(nil)
		r.Saver = saverFunc(func(_ context.Context, url string, items []grabbr.Item) error {
			mu.Lock()
			defer mu.Unlock()
			saved[url] = items
			return nil
		})

		_, err := r.Run(context.Background(), []string{"https://example.com/a", "https://example.com/b"}, nil)

		require.NoError(t, err)
		assert.Equal(t, itemsFor("https://example.com/a"), saved["https://example.com/a"])
		assert.Equal(t, itemsFor("https://example.com/b"), saved["https://example.com/b"])
	})

	t.Run("save failure fails the page", func(t *testing.T) {
		t.Parallel()

		r := newRunner(nil)
		r.Saver = saverFunc(func(context.Context, string, []grabbr.Item) error { return errors.New("disk full") })

		res, err := r.Run(context.Background(), []string{"https://example.com/a"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.EqualError(t, res.Pages[0].Err, "disk full")
	})

	t.Run("releases documents", func(t *testing.T) {
		t.Parallel()

		doc := &closingDocument{Document: mock.NewDocument(mock.Link(&mock.Node{TagName: "body"}))}
		r := newRunner(nil)
		r.Source = &mock.DocumentSource{
			OpenFn: func(context.Context, string) (grabbr.Document, error) { return doc, nil },
		}
		r.Extractor = &mock.Extractor{
			ExtractFn: func(context.Context, grabbr.Document, grabbr.Mode, grabbr.Options) (*grabbr.Result, error) {
				return &grabbr.Result{Format: grabbr.FormatJSON}, nil
			},
		}

		_, err := r.Run(context.Background(), []string{"https://example.com/quiz"}, nil)

		require.NoError(t, err)
		assert.True(t, doc.closed.Load())
	})

	t.Run("paces every page through the limiter", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var paced []string
		r := newRunner(nil)
		r.RateLimiter = limiterFunc(func(_ context.Context, pageURL string) error {
			mu.Lock()
			defer mu.Unlock()
			paced = append(paced, pageURL)
			return nil
		})

		_, err := r.Run(context.Background(), []string{"https://a.example.com/1", "https://b.example.com/2"}, nil)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"https://a.example.com/1", "https://b.example.com/2"}, paced)
	})

	t.Run("limiter errors fail the page", func(t *testing.T) {
		t.Parallel()

		r := newRunner(nil)
		r.RateLimiter = batch.NewDomainLimiter(1)

		res, err := r.Run(context.Background(), []string{"https://example.com/1", "/relative/only"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Extracted)
		assert.Equal(t, grabbr.EINVALID, grabbr.ErrorCode(res.Pages[1].Err))
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		r := newRunner(map[string]error{"https://example.com/bad": errors.New("boom")})
		r.Concurrency = 1

		var events []batch.ProgressEvent
		_, err := r.Run(context.Background(), []string{"https://example.com/quiz", "https://example.com/bad"}, func(e batch.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, batch.ProgressFinished, events[3].Type)

		var types []batch.ProgressType
		for _, e := range events[1:3] {
			types = append(types, e.Type)
			assert.Equal(t, 2, e.Total)
		}
		assert.ElementsMatch(t, []batch.ProgressType{batch.ProgressCompleted, batch.ProgressFailed}, types)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := newRunner(nil)
		r.RateLimiter = batch.NewDomainLimiter(1)

		res, err := r.Run(ctx, []string{"https://example.com/1", "https://example.com/2"}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, res.Failed)
	})
}

type saverFunc func(ctx context.Context, url string, items []grabbr.Item) error

func (f saverFunc) Save(ctx context.Context, url string, items []grabbr.Item) error {
	return f(ctx, url, items)
}

type limiterFunc func(ctx context.Context, pageURL string) error

func (f limiterFunc) Wait(ctx context.Context, pageURL string) error { return f(ctx, pageURL) }

func TestOpenWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var attempts int
		src := &mock.DocumentSource{
			OpenFn: func(context.Context, string) (grabbr.Document, error) {
				attempts++
				if attempts < 3 {
					return nil, errors.New("connection reset")
				}
				return &mock.Document{}, nil
			},
		}

		doc, err := batch.OpenWithRetry(context.Background(), src, "https://example.com", []time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after last delay", func(t *testing.T) {
		t.Parallel()

		var attempts int
		src := &mock.DocumentSource{
			OpenFn: func(context.Context, string) (grabbr.Document, error) {
				attempts++
				return nil, fmt.Errorf("attempt %d failed", attempts)
			},
		}

		_, err := batch.OpenWithRetry(context.Background(), src, "https://example.com", []time.Duration{0, 0})

		require.EqualError(t, err, "attempt 3 failed")
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry application errors", func(t *testing.T) {
		t.Parallel()

		var attempts int
		src := &mock.DocumentSource{
			OpenFn: func(context.Context, string) (grabbr.Document, error) {
				attempts++
				return nil, grabbr.Errorf(grabbr.ENOTFOUND, "HTTP 404")
			},
		}

		_, err := batch.OpenWithRetry(context.Background(), src, "https://example.com", []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		src := &mock.DocumentSource{
			OpenFn: func(context.Context, string) (grabbr.Document, error) {
				cancel()
				return nil, errors.New("timeout")
			},
		}

		_, err := batch.OpenWithRetry(ctx, src, "https://example.com", []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com", batch.TruncateURL("https://example.com", 30))
	assert.Equal(t, "...com/quiz", batch.TruncateURL("https://example.com/quiz", 11))
	assert.Equal(t, "htt", batch.TruncateURL("https://example.com", 3))
	assert.Equal(t, "", batch.TruncateURL("https://example.com", 0))
}
