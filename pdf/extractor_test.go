package pdf_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF builds a minimal single-font PDF with one page per entry in
// pages and writes it to dir. Offsets in the xref table are computed
// while the file is assembled.
func writePDF(t *testing.T, dir, name, title string, pages []string) string {
	t.Helper()

	var buf strings.Builder
	offsets := make(map[int]int)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")

	// Objects: 1 catalog, 2 pages, 3 font, 4 info, then page/content pairs.
	firstPageObj := 5
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageObj+2*i))
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(4, fmt.Sprintf("<< /Title (%s) >>", title))

	for i, text := range pages {
		pageObj := firstPageObj + 2*i
		contentObj := pageObj + 1
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

		writeObj(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObj))
		writeObj(contentObj, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	objCount := 4 + 2*len(pages)
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(buf.String()), 0o644))
	return path
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts per-page text", func(t *testing.T) {
		t.Parallel()

		path := writePDF(t, t.TempDir(), "manual.pdf", "Owner Manual", []string{
			"The warranty covers two years.",
			"Returns are accepted within 30 days.",
		})

		result, err := pdf.NewExtractor().Extract(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "Owner Manual", result.Title)
		require.Len(t, result.Pages, 2)
		assert.Equal(t, 1, result.Pages[0].Number)
		assert.Contains(t, result.Pages[0].Text, "warranty")
		assert.Equal(t, 2, result.Pages[1].Number)
		assert.Contains(t, result.Pages[1].Text, "Returns")
	})

	t.Run("falls back to file name for title", func(t *testing.T) {
		t.Parallel()

		path := writePDF(t, t.TempDir(), "report.pdf", "", []string{"some content"})

		result, err := pdf.NewExtractor().Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "report", result.Title)
	})

	t.Run("joins pages in Content", func(t *testing.T) {
		t.Parallel()

		path := writePDF(t, t.TempDir(), "doc.pdf", "Doc", []string{"first", "second"})

		result, err := pdf.NewExtractor().Extract(context.Background(), path)
		require.NoError(t, err)

		content := result.Content()
		assert.Contains(t, content, "first")
		assert.Contains(t, content, "second")
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewExtractor().Extract(context.Background(), "/nonexistent/file.pdf")
		require.Error(t, err)
		assert.Equal(t, ollapdf.ENOTFOUND, ollapdf.ErrorCode(err))
	})

	t.Run("returns EINVALID for non-PDF file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "not-a-pdf.pdf")
		require.NoError(t, os.WriteFile(path, []byte("plain text, not a PDF"), 0o644))

		_, err := pdf.NewExtractor().Extract(context.Background(), path)
		require.Error(t, err)
		assert.Equal(t, ollapdf.EINVALID, ollapdf.ErrorCode(err))
	})
}
