package mock

import (
	"context"

	"github.com/ollapdf/ollapdf"
)

var _ ollapdf.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of ollapdf.ChunkService.
type ChunkService struct {
	CreateChunksFn           func(ctx context.Context, chunks []*ollapdf.Chunk) error
	FindChunkByIDFn          func(ctx context.Context, id string) (*ollapdf.Chunk, error)
	FindChunksFn             func(ctx context.Context, filter ollapdf.ChunkFilter) ([]*ollapdf.Chunk, error)
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*ollapdf.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*ollapdf.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter ollapdf.ChunkFilter) ([]*ollapdf.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}

var _ ollapdf.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of ollapdf.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, embedding []float32, opts ollapdf.SearchOptions) ([]ollapdf.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, embedding []float32, opts ollapdf.SearchOptions) ([]ollapdf.SearchResult, error) {
	return s.SearchFn(ctx, embedding, opts)
}
