package mock

import (
	"context"

	"github.com/ollapdf/ollapdf"
)

var _ ollapdf.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ollapdf.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, path string) (*ollapdf.ExtractResult, error)
}

func (e *Extractor) Extract(ctx context.Context, path string) (*ollapdf.ExtractResult, error) {
	return e.ExtractFn(ctx, path)
}
