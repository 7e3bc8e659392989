package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ollapdf/ollapdf"
)

// Compile-time interface verification.
var (
	_ ollapdf.ChunkService  = (*ChunkService)(nil)
	_ ollapdf.SearchService = (*ChunkService)(nil)
)

// ChunkService implements ollapdf.ChunkService and ollapdf.SearchService
// using SQLite. Embeddings are stored as little-endian float32 blobs and
// searched with a brute-force cosine scan, which is fast enough for the
// corpus sizes a single local machine indexes.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a single transaction.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*ollapdf.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, embedding, source_file, page, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		c.ID = uuid.New().String()
		if _, err := stmt.ExecContext(ctx, c.ID, c.DocumentID, c.Content,
			encodeVector(c.Embedding), c.Metadata.SourceFile, c.Metadata.Page, c.Metadata.Position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*ollapdf.Chunk, error) {
	var chunk ollapdf.Chunk
	var embedding []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, embedding, source_file, page, position
		FROM chunks
		WHERE id = ?
	`, id).Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &embedding,
		&chunk.Metadata.SourceFile, &chunk.Metadata.Page, &chunk.Metadata.Position)

	if err == sql.ErrNoRows {
		return nil, ollapdf.Errorf(ollapdf.ENOTFOUND, "chunk not found")
	}
	if err != nil {
		return nil, err
	}

	chunk.Embedding, err = decodeVector(embedding)
	if err != nil {
		return nil, err
	}

	return &chunk, nil
}

// FindChunks retrieves chunks matching the filter, ordered by position.
func (s *ChunkService) FindChunks(ctx context.Context, filter ollapdf.ChunkFilter) ([]*ollapdf.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, content, embedding, source_file, page, position FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}

	query.WriteString(" ORDER BY position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*ollapdf.Chunk
	for rows.Next() {
		var chunk ollapdf.Chunk
		var embedding []byte

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &embedding,
			&chunk.Metadata.SourceFile, &chunk.Metadata.Page, &chunk.Metadata.Position); err != nil {
			return nil, err
		}

		chunk.Embedding, err = decodeVector(embedding)
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}

// DeleteChunksByDocument removes all chunks for a document.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}

// Search returns the chunks most similar to the query embedding,
// ordered by descending cosine similarity.
func (s *ChunkService) Search(ctx context.Context, embedding []float32, opts ollapdf.SearchOptions) ([]ollapdf.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, ollapdf.Errorf(ollapdf.EINVALID, "query embedding required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, embedding, source_file, page, position
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ollapdf.SearchResult
	for rows.Next() {
		var chunk ollapdf.Chunk
		var blob []byte

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &blob,
			&chunk.Metadata.SourceFile, &chunk.Metadata.Page, &chunk.Metadata.Position); err != nil {
			return nil, err
		}

		chunk.Embedding, err = decodeVector(blob)
		if err != nil {
			return nil, err
		}

		score := cosineSimilarity(embedding, chunk.Embedding)
		if score < opts.MinScore {
			continue
		}

		results = append(results, ollapdf.SearchResult{Chunk: &chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}
