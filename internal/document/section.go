package document

import "strings"

// SectionKind identifies a Section variant.
type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionParagraph
	SectionTable
	SectionImage
)

func (k SectionKind) String() string {
	switch k {
	case SectionParagraph:
		return "paragraph"
	case SectionTable:
		return "table"
	case SectionImage:
		return "image"
	default:
		return "unknown"
	}
}

// Section is one block of a page: Paragraph, Table or Image.
type Section interface {
	Kind() SectionKind
	section()
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

// Table is a grid of cell strings, row-major.
type Table struct {
	Rows [][]string
}

// Image is an embedded picture, represented only by its caption.
type Image struct {
	Caption string
}

func (Paragraph) Kind() SectionKind { return SectionParagraph }
func (Paragraph) section()          {}
func (Table) Kind() SectionKind     { return SectionTable }
func (Table) section()              {}
func (Image) Kind() SectionKind     { return SectionImage }
func (Image) section()              {}

// Page is an ordered list of sections.
type Page struct {
	Sections []Section
}

// Document is a decoded paginated document plus its file metadata.
type Document struct {
	Name     string
	ByteSize int64
	Pages    []Page
}

// SectionCounts tallies sections by kind across all pages.
type SectionCounts struct {
	Paragraphs int `json:"paragraphs"`
	Tables     int `json:"tables"`
	Images     int `json:"images"`
}

// Total returns the number of counted sections.
func (c SectionCounts) Total() int { return c.Paragraphs + c.Tables + c.Images }

// Sections returns every section in page order.
func (d *Document) Sections() []Section {
	var out []Section
	for _, p := range d.Pages {
		out = append(out, p.Sections...)
	}
	return out
}

// Counts tallies the document's sections.
func (d *Document) Counts() SectionCounts {
	var c SectionCounts
	for _, s := range d.Sections() {
		switch s.(type) {
		case Paragraph:
			c.Paragraphs++
		case Table:
			c.Tables++
		case Image:
			c.Images++
		}
	}
	return c
}

// Text joins paragraph text and table cells in reading order, one line per
// paragraph or table row. Images contribute nothing.
func (d *Document) Text() string {
	var lines []string
	for _, s := range d.Sections() {
		switch v := s.(type) {
		case Paragraph:
			lines = append(lines, v.Text)
		case Table:
			for _, row := range v.Rows {
				lines = append(lines, strings.Join(row, " "))
			}
		}
	}
	return strings.Join(lines, "\n")
}
