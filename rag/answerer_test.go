package rag_test

import (
	"context"
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/mock"
	"github.com/ollapdf/ollapdf/queue"
	"github.com/ollapdf/ollapdf/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
}

func testSearch(results ...ollapdf.SearchResult) *mock.SearchService {
	return &mock.SearchService{
		SearchFn: func(ctx context.Context, embedding []float32, opts ollapdf.SearchOptions) ([]ollapdf.SearchResult, error) {
			return results, nil
		},
	}
}

func warrantyChunk() ollapdf.SearchResult {
	return ollapdf.SearchResult{
		Chunk: &ollapdf.Chunk{
			DocumentID: "doc-1",
			Content:    "The warranty covers two years.",
			Metadata:   ollapdf.ChunkMetadata{SourceFile: "manual.pdf", Page: 12},
		},
		Score: 0.91,
	}
}

func TestAnswerer_Ask(t *testing.T) {
	t.Parallel()

	t.Run("answers with sources and ticket ID", func(t *testing.T) {
		t.Parallel()

		var gotReq ollapdf.GenerateRequest
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
				gotReq = req
				return "Two years.", nil
			},
		}
		q := queue.New(gen, queue.Config{Capacity: 2})
		defer q.Close()

		answerer := rag.NewAnswerer(testEmbedder(), testSearch(warrantyChunk()), q)

		answer, err := answerer.Ask(context.Background(), "How long is the warranty?")
		require.NoError(t, err)

		assert.Equal(t, "Two years.", answer.Text)
		assert.NotEmpty(t, answer.TicketID)
		require.Len(t, answer.Sources, 1)
		assert.Equal(t, "manual.pdf", answer.Sources[0].Chunk.Metadata.SourceFile)

		assert.Equal(t, "How long is the warranty?", gotReq.Prompt)
		assert.Contains(t, gotReq.System, "## Source: manual.pdf (page 12)")
		assert.Contains(t, gotReq.System, "The warranty covers two years.")
		assert.InDelta(t, rag.DefaultTemperature, gotReq.Temperature, 0.001)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		t.Parallel()

		answerer := rag.NewAnswerer(testEmbedder(), testSearch(), &mock.QueueService{})

		_, err := answerer.Ask(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, ollapdf.EINVALID, ollapdf.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when nothing is indexed", func(t *testing.T) {
		t.Parallel()

		answerer := rag.NewAnswerer(testEmbedder(), testSearch(), &mock.QueueService{})

		_, err := answerer.Ask(context.Background(), "anything?")
		require.Error(t, err)
		assert.Equal(t, ollapdf.ENOTFOUND, ollapdf.ErrorCode(err))
	})

	t.Run("propagates embedder error without touching the queue", func(t *testing.T) {
		t.Parallel()

		embedder := &mock.Embedder{
			EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
				return nil, ollapdf.Errorf(ollapdf.EUNAVAILABLE, "backend down")
			},
		}
		answerer := rag.NewAnswerer(embedder, testSearch(warrantyChunk()), &mock.QueueService{})

		_, err := answerer.Ask(context.Background(), "anything?")
		require.Error(t, err)
		assert.Equal(t, ollapdf.EUNAVAILABLE, ollapdf.ErrorCode(err))
	})

	t.Run("propagates queue rejection", func(t *testing.T) {
		t.Parallel()

		q := &mock.QueueService{
			SubmitFn: func(ctx context.Context, req ollapdf.GenerateRequest) (ollapdf.Ticket, error) {
				return nil, ollapdf.Errorf(ollapdf.EQUEUEFULL, "queue full")
			},
		}
		answerer := rag.NewAnswerer(testEmbedder(), testSearch(warrantyChunk()), q)

		_, err := answerer.Ask(context.Background(), "anything?")
		require.Error(t, err)
		assert.Equal(t, ollapdf.EQUEUEFULL, ollapdf.ErrorCode(err))
	})
}

func TestAnswerer_Submit(t *testing.T) {
	t.Parallel()

	t.Run("returns ticket without waiting", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
				<-release
				return "done", nil
			},
		}
		q := queue.New(gen, queue.Config{Capacity: 2})
		defer q.Close()
		defer close(release)

		answerer := rag.NewAnswerer(testEmbedder(), testSearch(warrantyChunk()), q)

		ticket, sources, err := answerer.Submit(context.Background(), "anything?")
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.NotEmpty(t, ticket.ID())
		assert.False(t, ticket.State().Terminal())
	})

	t.Run("respects top-k option", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, embedding []float32, opts ollapdf.SearchOptions) ([]ollapdf.SearchResult, error) {
				gotLimit = opts.Limit
				return []ollapdf.SearchResult{warrantyChunk()}, nil
			},
		}
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
				return "ok", nil
			},
		}
		q := queue.New(gen, queue.Config{Capacity: 2})
		defer q.Close()

		answerer := rag.NewAnswerer(testEmbedder(), search, q, rag.WithTopK(7))

		_, _, err := answerer.Submit(context.Background(), "anything?")
		require.NoError(t, err)
		assert.Equal(t, 7, gotLimit)
	})
}
