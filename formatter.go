package ollapdf

import (
	"fmt"
	"strings"
)

// FormatChunks formats retrieved chunks as the context block of an LLM
// prompt. Each chunk is headed by its source file and page for citation.
// Chunks are separated by blank lines.
func FormatChunks(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, res := range results {
		header := res.Chunk.Metadata.SourceFile
		if header == "" {
			header = res.Chunk.DocumentID
		}
		if page := res.Chunk.Metadata.Page; page > 0 {
			header = fmt.Sprintf("%s (page %d)", header, page)
		}
		parts = append(parts, "## Source: "+header+"\n"+res.Chunk.Content)
	}

	return strings.Join(parts, "\n\n")
}
