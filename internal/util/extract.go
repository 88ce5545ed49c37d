package util

import (
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText extracts plain text from a PDF held in memory,
// concatenating pages in order. Any failure (corrupt file, image-only
// scan, unsupported encoding) yields an empty string rather than an
// error; callers must substitute a sentinel before handing the result
// to the scoring prompt.
func ExtractPDFText(content []byte) string {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return ""
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	return strings.TrimSpace(fullText.String())
}
