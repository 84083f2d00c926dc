package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Strategy converts PDF bytes into plain text or reports why it could
// not.
type Strategy func(content []byte) (string, error)

// Extractor tries an ordered list of strategies and returns the first
// non-empty result. The default order is layout-aware row extraction
// first, then sequential per-page plain text. Total failure yields an
// empty string rather than an error; the caller rejects empty text.
type Extractor struct {
	strategies []Strategy
}

func New() *Extractor {
	return &Extractor{
		strategies: []Strategy{extractByRows, extractSequential},
	}
}

// NewWithStrategies overrides the fallback chain.
func NewWithStrategies(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

func (e *Extractor) Extract(content []byte) string {
	for _, strategy := range e.strategies {
		text, err := runStrategy(strategy, content)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// runStrategy converts library panics into errors. The underlying
// parser panics on some malformed cross-reference tables, and a broken
// document must select the next strategy instead of killing the
// pipeline.
func runStrategy(strategy Strategy, content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf strategy panic: %v", r)
		}
	}()
	return strategy(content)
}

// extractByRows is the layout-aware strategy: text fragments grouped by
// visual row, one line per row.
func extractByRows(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read rows on page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				builder.WriteString(word.S)
				builder.WriteString(" ")
			}
			builder.WriteString("\n")
		}
	}
	return builder.String(), nil
}

// extractSequential is the fallback strategy: plain text concatenated
// page by page in content-stream order.
func extractSequential(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read plain text on page %d: %w", i, err)
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}
