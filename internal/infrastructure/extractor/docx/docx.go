package docx

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphBreaks = regexp.MustCompile(`</w:p>`)
	textRuns        = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	xmlEntities     = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// Extractor reads a DOCX container and concatenates paragraph text,
// one line per paragraph. A document with no recoverable text yields an
// empty string; the caller rejects empty results.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(content []byte) string {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent())
}

// paragraphText flattens the document XML: each w:p paragraph becomes
// one line built from its w:t runs.
func paragraphText(documentXML string) string {
	var builder strings.Builder
	for _, paragraph := range paragraphBreaks.Split(documentXML, -1) {
		runs := textRuns.FindAllStringSubmatch(paragraph, -1)
		if len(runs) == 0 {
			continue
		}
		for _, run := range runs {
			builder.WriteString(xmlEntities.Replace(run[1]))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
