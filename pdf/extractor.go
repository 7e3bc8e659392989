// Package pdf provides a PDF-based implementation of ollapdf.Extractor.
package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ollapdf/ollapdf"
)

// Ensure Extractor implements ollapdf.Extractor at compile time.
var _ ollapdf.Extractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF files page by page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its per-page text.
func (e *Extractor) Extract(ctx context.Context, path string) (*ollapdf.ExtractResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ollapdf.Errorf(ollapdf.ENOTFOUND, "file not found: %s", path)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, ollapdf.Errorf(ollapdf.EINVALID, "failed to parse PDF %s: %s", path, err)
	}
	defer f.Close()

	result := &ollapdf.ExtractResult{
		Title: titleFor(reader, path),
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			// Skip pages with unsupported encodings rather than failing
			// the whole document.
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		result.Pages = append(result.Pages, ollapdf.PageText{Number: i, Text: text})
	}

	if len(result.Pages) == 0 {
		return nil, ollapdf.Errorf(ollapdf.EINVALID, "no extractable text in %s", path)
	}

	return result, nil
}

// titleFor returns the document's metadata title, falling back to the
// file name without extension.
func titleFor(reader *pdf.Reader, path string) string {
	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		if title := info.Key("Title").Text(); title != "" {
			return title
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
