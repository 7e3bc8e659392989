package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/ollapdf/ollapdf"
)

// Compile-time interface verification.
var _ ollapdf.DocumentService = (*DocumentService)(nil)

// DocumentService implements ollapdf.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// HashContent computes xxHash of content and returns a hex string.
// Used to detect whether an already indexed file changed on disk.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *ollapdf.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.IndexedAt = time.Now().UTC()
	doc.ContentHash = HashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, file_path, title, content, content_hash, pages, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.FilePath, doc.Title, doc.Content, doc.ContentHash,
		doc.Pages, doc.IndexedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*ollapdf.Document, error) {
	var doc ollapdf.Document
	var indexedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, file_path, title, content, content_hash, pages, indexed_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.FilePath, &doc.Title, &doc.Content,
		&doc.ContentHash, &doc.Pages, &indexedAt)

	if err == sql.ErrNoRows {
		return nil, ollapdf.Errorf(ollapdf.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter ollapdf.DocumentFilter) ([]*ollapdf.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, file_path, title, content, content_hash, pages, indexed_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.FilePath != nil {
		query.WriteString(" AND file_path = ?")
		args = append(args, *filter.FilePath)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY indexed_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*ollapdf.Document
	for rows.Next() {
		var doc ollapdf.Document
		var indexedAt string

		if err := rows.Scan(&doc.ID, &doc.FilePath, &doc.Title, &doc.Content,
			&doc.ContentHash, &doc.Pages, &indexedAt); err != nil {
			return nil, err
		}

		doc.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
// Associated chunks are removed via the foreign key cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ollapdf.Errorf(ollapdf.ENOTFOUND, "document not found")
	}

	return nil
}
