// Package ingest implements the PDF indexing pipeline: extract, chunk,
// embed, and persist.
package ingest

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/bloom"
	"github.com/ollapdf/ollapdf/sqlite"
)

const (
	// DefaultConcurrency is the number of files processed in parallel.
	// Extraction is CPU-bound; embedding calls are serialized by the
	// rate limiter regardless.
	DefaultConcurrency = 4

	// DefaultEmbedBatchSize is the number of chunks embedded per request.
	DefaultEmbedBatchSize = 16

	// defaultExpectedDocs sizes the dedup filter.
	defaultExpectedDocs = 10000
)

// Result summarizes the ingestion of a single file.
type Result struct {
	Path       string
	DocumentID string
	Chunks     int

	// Skipped is true when the file's content was already indexed.
	Skipped bool
}

// Ingester indexes PDF files into the document and chunk stores.
type Ingester struct {
	extractor ollapdf.Extractor
	embedder  ollapdf.Embedder
	docs      ollapdf.DocumentService
	chunks    ollapdf.ChunkService

	chunkSize      int
	chunkOverlap   int
	concurrency    int
	embedBatchSize int
	limiter        *rate.Limiter

	mu     sync.Mutex
	dedup  *bloom.Filter
	loaded bool
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithChunking overrides the chunk size and overlap.
func WithChunking(size, overlap int) Option {
	return func(in *Ingester) {
		in.chunkSize = size
		in.chunkOverlap = overlap
	}
}

// WithConcurrency sets the number of files processed in parallel.
func WithConcurrency(n int) Option {
	return func(in *Ingester) {
		in.concurrency = n
	}
}

// WithEmbedLimit throttles embedding requests to r per second.
// Zero or negative disables throttling.
func WithEmbedLimit(r float64) Option {
	return func(in *Ingester) {
		if r > 0 {
			in.limiter = rate.NewLimiter(rate.Limit(r), 1)
		}
	}
}

// NewIngester creates a new Ingester.
func NewIngester(extractor ollapdf.Extractor, embedder ollapdf.Embedder,
	docs ollapdf.DocumentService, chunks ollapdf.ChunkService, opts ...Option) *Ingester {
	in := &Ingester{
		extractor:      extractor,
		embedder:       embedder,
		docs:           docs,
		chunks:         chunks,
		chunkSize:      ollapdf.DefaultChunkSize,
		chunkOverlap:   ollapdf.DefaultChunkOverlap,
		concurrency:    DefaultConcurrency,
		embedBatchSize: DefaultEmbedBatchSize,
		dedup:          bloom.NewFilter(defaultExpectedDocs, 0.01),
		limiter:        rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// IngestFile indexes a single PDF file. Files whose content hash is
// already indexed are skipped; a file previously indexed under the same
// path with different content is re-indexed, replacing the old document.
func (in *Ingester) IngestFile(ctx context.Context, path string) (*Result, error) {
	if err := in.loadDedup(ctx); err != nil {
		return nil, err
	}

	extracted, err := in.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	hash := sqlite.HashContent(extracted.Content())

	// The filter can report false positives, so a hit is confirmed
	// against the store before skipping.
	if in.testDedup(hash) {
		existing, err := in.docs.FindDocuments(ctx, ollapdf.DocumentFilter{ContentHash: &hash})
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return &Result{Path: path, DocumentID: existing[0].ID, Skipped: true}, nil
		}
	}

	// Replace a stale document indexed under the same path.
	stale, err := in.docs.FindDocuments(ctx, ollapdf.DocumentFilter{FilePath: &path})
	if err != nil {
		return nil, err
	}
	for _, doc := range stale {
		if err := in.docs.DeleteDocument(ctx, doc.ID); err != nil {
			return nil, err
		}
	}

	doc := &ollapdf.Document{
		FilePath: path,
		Title:    extracted.Title,
		Content:  extracted.Content(),
		Pages:    len(extracted.Pages),
	}
	if err := in.docs.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	chunks := in.buildChunks(doc, extracted)
	if err := in.embedChunks(ctx, chunks); err != nil {
		return nil, err
	}
	if err := in.chunks.CreateChunks(ctx, chunks); err != nil {
		return nil, err
	}

	in.addDedup(doc.ContentHash)

	return &Result{Path: path, DocumentID: doc.ID, Chunks: len(chunks)}, nil
}

// IngestDir indexes all PDF files under dir, recursively.
// Files are processed in parallel; the first error cancels the rest.
func (in *Ingester) IngestDir(ctx context.Context, dir string) ([]*Result, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ollapdf.Errorf(ollapdf.ENOTFOUND, "no PDF files found in %s", dir)
	}

	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			result, err := in.IngestFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// buildChunks splits each page into chunks carrying citation metadata.
func (in *Ingester) buildChunks(doc *ollapdf.Document, extracted *ollapdf.ExtractResult) []*ollapdf.Chunk {
	sourceFile := filepath.Base(doc.FilePath)

	var chunks []*ollapdf.Chunk
	position := 0
	for _, page := range extracted.Pages {
		for _, content := range ollapdf.SplitText(page.Text, in.chunkSize, in.chunkOverlap) {
			chunks = append(chunks, &ollapdf.Chunk{
				DocumentID: doc.ID,
				Content:    content,
				Metadata: ollapdf.ChunkMetadata{
					SourceFile: sourceFile,
					Page:       page.Number,
					Position:   position,
				},
			})
			position++
		}
	}
	return chunks
}

// embedChunks fills in embedding vectors, batching requests to the backend.
func (in *Ingester) embedChunks(ctx context.Context, chunks []*ollapdf.Chunk) error {
	for start := 0; start < len(chunks); start += in.embedBatchSize {
		end := min(start+in.embedBatchSize, len(chunks))
		batch := chunks[start:end]

		if err := in.limiter.Wait(ctx); err != nil {
			return err
		}

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := in.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		for i, c := range batch {
			c.Embedding = vectors[i]
		}
	}
	return nil
}

// loadDedup seeds the filter from already indexed documents on first use.
func (in *Ingester) loadDedup(ctx context.Context) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.loaded {
		return nil
	}

	docs, err := in.docs.FindDocuments(ctx, ollapdf.DocumentFilter{})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		in.dedup.Add(doc.ContentHash)
	}

	in.loaded = true
	return nil
}

func (in *Ingester) testDedup(hash string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dedup.Test(hash)
}

func (in *Ingester) addDedup(hash string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.dedup.Add(hash)
}
