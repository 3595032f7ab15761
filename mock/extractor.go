package mock

import (
	"context"

	"github.com/fwojciec/grabbr"
)

var _ grabbr.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of grabbr.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc grabbr.Document, mode grabbr.Mode, opts grabbr.Options) (*grabbr.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, doc grabbr.Document, mode grabbr.Mode, opts grabbr.Options) (*grabbr.Result, error) {
	return e.ExtractFn(ctx, doc, mode, opts)
}
