package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrUnknownSectionType signals a section type tag outside
	// paragraph/table/image.
	ErrUnknownSectionType = errors.New("unknown section type")
	// ErrEmptyPath signals a load request without a file path.
	ErrEmptyPath = errors.New("empty path")
)

// SectionJSON is the wire form of a section.
type SectionJSON struct {
	Type    string     `json:"type"`
	Text    string     `json:"text,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Caption string     `json:"caption,omitempty"`
}

// PageJSON is the wire form of a page.
type PageJSON struct {
	Sections []SectionJSON `json:"sections"`
}

// FileJSON is the wire form of a document file.
type FileJSON struct {
	Name     string     `json:"name,omitempty"`
	ByteSize int64      `json:"byte_size,omitempty"`
	Pages    []PageJSON `json:"pages"`
}

// Section converts the wire form into a Section.
func (sj SectionJSON) Section() (Section, error) {
	switch sj.Type {
	case "paragraph":
		return Paragraph{Text: sj.Text}, nil
	case "table":
		return Table{Rows: sj.Rows}, nil
	case "image":
		return Image{Caption: sj.Caption}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, sj.Type)
	}
}

// FromJSON converts a wire document, naming the page and section index of
// the first invalid section.
func FromJSON(f FileJSON) (*Document, error) {
	doc := &Document{Name: f.Name, ByteSize: f.ByteSize, Pages: make([]Page, 0, len(f.Pages))}
	for pi, pj := range f.Pages {
		page := Page{Sections: make([]Section, 0, len(pj.Sections))}
		for si, sj := range pj.Sections {
			s, err := sj.Section()
			if err != nil {
				return nil, fmt.Errorf("page %d section %d: %w", pi, si, err)
			}
			page.Sections = append(page.Sections, s)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// Decode reads a JSON document from r.
func Decode(r io.Reader) (*Document, error) {
	var f FileJSON
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return FromJSON(f)
}

// LoadFile decodes the JSON document at path, defaulting Name and ByteSize
// from the file itself.
func LoadFile(path string) (*Document, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	doc, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}
	if doc.ByteSize == 0 {
		doc.ByteSize = stat.Size()
	}
	return doc, nil
}
