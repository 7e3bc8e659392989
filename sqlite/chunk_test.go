package sqlite_test

import (
	"context"
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkService_CreateChunks(t *testing.T) {
	t.Parallel()

	t.Run("creates chunks with generated IDs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		chunks := []*ollapdf.Chunk{
			{
				DocumentID: doc.ID,
				Content:    "first part",
				Embedding:  []float32{0.1, 0.2, 0.3},
				Metadata:   ollapdf.ChunkMetadata{SourceFile: "manual.pdf", Page: 1, Position: 0},
			},
			{
				DocumentID: doc.ID,
				Content:    "second part",
				Embedding:  []float32{0.4, 0.5, 0.6},
				Metadata:   ollapdf.ChunkMetadata{SourceFile: "manual.pdf", Page: 2, Position: 1},
			},
		}

		require.NoError(t, svc.CreateChunks(ctx, chunks))
		assert.NotEmpty(t, chunks[0].ID)
		assert.NotEmpty(t, chunks[1].ID)
		assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
	})

	t.Run("round-trips embedding vectors", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		embedding := []float32{-1.5, 0, 0.25, 3.75}
		chunks := []*ollapdf.Chunk{
			{DocumentID: doc.ID, Content: "text", Embedding: embedding},
		}
		require.NoError(t, svc.CreateChunks(ctx, chunks))

		found, err := svc.FindChunkByID(ctx, chunks[0].ID)
		require.NoError(t, err)
		assert.Equal(t, embedding, found.Embedding)
	})

	t.Run("rejects invalid chunk and persists nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		chunks := []*ollapdf.Chunk{
			{DocumentID: doc.ID, Content: "ok", Embedding: []float32{1}},
			{DocumentID: doc.ID, Content: ""}, // invalid
		}

		err := svc.CreateChunks(ctx, chunks)
		require.Error(t, err)
		assert.Equal(t, ollapdf.EINVALID, ollapdf.ErrorCode(err))

		found, err := svc.FindChunks(ctx, ollapdf.ChunkFilter{DocumentID: &doc.ID})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		require.NoError(t, svc.CreateChunks(context.Background(), nil))
	})
}

func TestChunkService_FindChunks(t *testing.T) {
	t.Parallel()

	t.Run("orders by position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		chunks := []*ollapdf.Chunk{
			{DocumentID: doc.ID, Content: "third", Embedding: []float32{1}, Metadata: ollapdf.ChunkMetadata{Position: 2}},
			{DocumentID: doc.ID, Content: "first", Embedding: []float32{1}, Metadata: ollapdf.ChunkMetadata{Position: 0}},
			{DocumentID: doc.ID, Content: "second", Embedding: []float32{1}, Metadata: ollapdf.ChunkMetadata{Position: 1}},
		}
		require.NoError(t, svc.CreateChunks(ctx, chunks))

		found, err := svc.FindChunks(ctx, ollapdf.ChunkFilter{DocumentID: &doc.ID})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "first", found[0].Content)
		assert.Equal(t, "second", found[1].Content)
		assert.Equal(t, "third", found[2].Content)
	})

	t.Run("returns ENOTFOUND for unknown chunk ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		_, err := svc.FindChunkByID(context.Background(), "nonexistent")
		require.Error(t, err)
		assert.Equal(t, ollapdf.ENOTFOUND, ollapdf.ErrorCode(err))
	})
}

func TestChunkService_DeleteChunksByDocument(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewChunkService(db)
	ctx := context.Background()

	docA := createTestDocument(t, db, "/docs/a.pdf")
	docB := createTestDocument(t, db, "/docs/b.pdf")
	require.NoError(t, svc.CreateChunks(ctx, []*ollapdf.Chunk{
		{DocumentID: docA.ID, Content: "a1", Embedding: []float32{1}},
		{DocumentID: docA.ID, Content: "a2", Embedding: []float32{1}},
		{DocumentID: docB.ID, Content: "b1", Embedding: []float32{1}},
	}))

	require.NoError(t, svc.DeleteChunksByDocument(ctx, docA.ID))

	remaining, err := svc.FindChunks(ctx, ollapdf.ChunkFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b1", remaining[0].Content)
}

func TestChunkService_Search(t *testing.T) {
	t.Parallel()

	t.Run("orders by descending similarity", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		require.NoError(t, svc.CreateChunks(ctx, []*ollapdf.Chunk{
			{DocumentID: doc.ID, Content: "orthogonal", Embedding: []float32{0, 1}},
			{DocumentID: doc.ID, Content: "exact", Embedding: []float32{1, 0}},
			{DocumentID: doc.ID, Content: "close", Embedding: []float32{0.9, 0.1}},
		}))

		results, err := svc.Search(ctx, []float32{1, 0}, ollapdf.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "exact", results[0].Chunk.Content)
		assert.Equal(t, "close", results[1].Chunk.Content)
		assert.Equal(t, "orthogonal", results[2].Chunk.Content)
		assert.InDelta(t, 1.0, results[0].Score, 0.0001)
	})

	t.Run("applies limit and min score", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := createTestDocument(t, db, "/docs/manual.pdf")
		require.NoError(t, svc.CreateChunks(ctx, []*ollapdf.Chunk{
			{DocumentID: doc.ID, Content: "exact", Embedding: []float32{1, 0}},
			{DocumentID: doc.ID, Content: "close", Embedding: []float32{0.9, 0.1}},
			{DocumentID: doc.ID, Content: "orthogonal", Embedding: []float32{0, 1}},
		}))

		results, err := svc.Search(ctx, []float32{1, 0}, ollapdf.SearchOptions{Limit: 1})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "exact", results[0].Chunk.Content)

		results, err = svc.Search(ctx, []float32{1, 0}, ollapdf.SearchOptions{MinScore: 0.5})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("rejects empty query embedding", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		_, err := svc.Search(context.Background(), nil, ollapdf.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, ollapdf.EINVALID, ollapdf.ErrorCode(err))
	})
}
