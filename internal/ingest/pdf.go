package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer page by page. Scanned PDFs without a
// text layer come back as ErrEmpty from the registry.
type PDFExtractor struct{}

func (PDFExtractor) ExtractText(data []byte) (out string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		items := page.Content().Text
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, item.S)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}
