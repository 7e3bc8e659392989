package mock

import (
	"context"

	"github.com/ollapdf/ollapdf"
)

var _ ollapdf.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of ollapdf.Answerer.
type Answerer struct {
	AskFn func(ctx context.Context, question string) (*ollapdf.Answer, error)
}

func (a *Answerer) Ask(ctx context.Context, question string) (*ollapdf.Answer, error) {
	return a.AskFn(ctx, question)
}
