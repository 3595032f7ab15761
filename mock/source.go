package mock

import (
	"context"

	"github.com/fwojciec/grabbr"
)

var _ grabbr.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of grabbr.DocumentSource.
type DocumentSource struct {
	OpenFn  func(ctx context.Context, url string) (grabbr.Document, error)
	CloseFn func() error
}

func (s *DocumentSource) Open(ctx context.Context, url string) (grabbr.Document, error) {
	return s.OpenFn(ctx, url)
}

func (s *DocumentSource) Close() error {
	return s.CloseFn()
}
