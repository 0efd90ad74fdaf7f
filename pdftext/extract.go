package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrUnreadablePDF = errors.New("unreadable pdf")

// Extract returns the plain text of every page in page order.
// The pdf reader panics on some malformed inputs, so panics are converted
// to ErrUnreadablePDF.
func Extract(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty stream", ErrUnreadablePDF)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrUnreadablePDF, i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

// Extractor adapts Extract to the chat controller's dependency.
type Extractor struct{}

func (Extractor) Extract(data []byte) (string, error) {
	return Extract(data)
}
