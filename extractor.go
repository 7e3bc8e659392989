package ollapdf

import "context"

// ExtractResult holds the text extracted from a PDF file.
type ExtractResult struct {
	// Title is derived from document metadata or the file name.
	Title string

	// Pages holds the plain text of each page, in order.
	Pages []PageText
}

// PageText is the extracted text of a single page.
type PageText struct {
	// Number is the 1-based page number.
	Number int

	// Text is the plain text content of the page.
	Text string
}

// Content joins all page texts into a single string.
func (r *ExtractResult) Content() string {
	var out string
	for i, p := range r.Pages {
		if i > 0 {
			out += "\n\n"
		}
		out += p.Text
	}
	return out
}

// Extractor extracts plain text from PDF files.
type Extractor interface {
	// Extract reads the file at path and returns its per-page text.
	// Returns ENOTFOUND if the file does not exist and EINVALID if the
	// file cannot be parsed as a PDF.
	Extract(ctx context.Context, path string) (*ExtractResult, error)
}
