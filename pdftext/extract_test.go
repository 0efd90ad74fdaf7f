package pdftext

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(pages ...string) []byte {
	n := len(pages)
	// 1 catalog, 2 pages, 3 font, then a page + content pair per page
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	kids := make([]string, 0, n)
	for i, text := range pages {
		pageNum := 4 + i*2
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractConcatenatesPagesInOrder(t *testing.T) {
	text, err := Extract(buildPDF("Page one.", "Page two."))
	require.NoError(t, err)

	assert.Equal(t, "Page one.Page two.", text)
}

func TestExtractSinglePage(t *testing.T) {
	text, err := Extractor{}.Extract(buildPDF("The tenant shall vacate within 30 days."))
	require.NoError(t, err)

	assert.Equal(t, "The tenant shall vacate within 30 days.", text)
}

func TestExtractRejectsEmptyStream(t *testing.T) {
	text, err := Extract(nil)

	assert.ErrorIs(t, err, ErrUnreadablePDF)
	assert.Empty(t, text)
}

func TestExtractRejectsNonPDF(t *testing.T) {
	inputs := map[string][]byte{
		"plain text": []byte("The tenant shall vacate within 30 days."),
		"png header": {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
		"bad xref":   []byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\nstartxref\n999999\n%%EOF\n"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			text, err := Extract(data)
			assert.ErrorIs(t, err, ErrUnreadablePDF)
			assert.Empty(t, text)
		})
	}
}

func TestExtractorDelegates(t *testing.T) {
	_, err := Extractor{}.Extract([]byte("nope"))
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}
