// Package extractor pulls plain text out of PDF statement documents for
// the CLIs. The engine itself only ever consumes text; this package is
// the external-collaborator side of that boundary.
package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF file and returns its text, one line per
// statement row. Row-based extraction preserves layout best for the
// line-oriented statement scanner.
func ExtractText(filePath string) (text string, err error) {
	// The pdf library panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting pdf text: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no text could be extracted; the pdf may be image-based or scanned")
	}
	return strings.Join(lines, "\n"), nil
}
