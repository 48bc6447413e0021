package pdfextract

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractParagraphs reads the entire content of r and returns the PDF's
// text as an ordered sequence of non-empty, trimmed paragraphs (page
// order, then intra-page order). Returns a nil slice if the PDF has no
// extractable text.
func ExtractParagraphs(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return nil, err
	}
	return SplitParagraphs(string(out)), nil
}

// SplitParagraphs splits raw extracted text into paragraphs on blank-line
// boundaries, trimming each block and dropping empty ones.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, block)
	}
	return paragraphs
}
