package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/extractor/docx"
	"github.com/kirillkom/ats-resume-analyzer/internal/infrastructure/extractor/pdf"
)

// Extractor dispatches to a container-format extractor based on the
// filename extension. It is a pure transformation over the provided
// bytes; nothing is written to or read from the filesystem.
type Extractor struct {
	pdf  *pdf.Extractor
	docx *docx.Extractor
}

func New() *Extractor {
	return &Extractor{
		pdf:  pdf.New(),
		docx: docx.New(),
	}
}

func (e *Extractor) Extract(_ context.Context, content []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.pdf.Extract(content), nil
	case ".docx":
		return e.docx.Extract(content), nil
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text",
			fmt.Errorf("filename %q: only .pdf and .docx are supported", filename))
	}
}
