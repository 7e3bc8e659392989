package mock

import (
	"context"

	"github.com/ollapdf/ollapdf"
)

var _ ollapdf.Generator = (*Generator)(nil)

// Generator is a mock implementation of ollapdf.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req ollapdf.GenerateRequest) (string, error)
}

func (g *Generator) Generate(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}

var _ ollapdf.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of ollapdf.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatchFn(ctx, texts)
}
