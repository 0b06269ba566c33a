package narrative

import (
	"fmt"
	"strings"

	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
)

const paragraphSeparator = "\n\n"

const (
	documentPreviewLength  = 200
	paragraphPreviewLength = 100
	maxParagraphPreviews   = 3
)

// Summarize interprets a drawing from its elements and the structures
// detected in them. The result always ends with Disclaimer.
func Summarize(elements []drawing.Element, structures geometry.StructureSet) string {
	f := newFacts(elements, structures)

	paragraphs := make([]string, 0, len(rules))
	for _, r := range rules {
		if !r.applies(f) {
			continue
		}
		if p := r.write(f); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, paragraphSeparator)
}

// SummarizeDocument interprets a paginated document. A nil document yields
// the disclaimer alone.
func SummarizeDocument(doc *document.Document) string {
	if doc == nil {
		return Disclaimer
	}

	var paragraphs []string
	counts := doc.Counts()

	paragraphs = append(paragraphs, fmt.Sprintf("Document: %s with %s.",
		plural(len(doc.Pages), "page", "pages"),
		plural(counts.Total(), "section", "sections")))

	if counts.Total() > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf("Sections: %s, %s and %s.",
			plural(counts.Paragraphs, "paragraph", "paragraphs"),
			plural(counts.Tables, "table", "tables"),
			plural(counts.Images, "image", "images")))
	}

	if text := strings.TrimSpace(doc.Text()); text != "" {
		paragraphs = append(paragraphs, "Content preview: "+truncate(text, documentPreviewLength))
	}

	var previews []string
	for _, s := range doc.Sections() {
		p, ok := s.(document.Paragraph)
		if !ok || strings.TrimSpace(p.Text) == "" {
			continue
		}
		previews = append(previews, fmt.Sprintf("%d. %s", len(previews)+1, truncate(p.Text, paragraphPreviewLength)))
		if len(previews) == maxParagraphPreviews {
			break
		}
	}
	if len(previews) > 0 {
		paragraphs = append(paragraphs, "Paragraphs:\n"+strings.Join(previews, "\n"))
	}

	paragraphs = append(paragraphs, Disclaimer)
	return strings.Join(paragraphs, paragraphSeparator)
}
