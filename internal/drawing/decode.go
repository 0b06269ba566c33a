package drawing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrMalformedElement signals an element that violates the element contract,
	// such as a line without exactly two points.
	ErrMalformedElement = errors.New("malformed element")
	// ErrUnknownElementType signals an element type tag outside line/circle/text.
	ErrUnknownElementType = errors.New("unknown element type")
	// ErrEmptyPath signals a load request without a file path.
	ErrEmptyPath = errors.New("empty path")
)

// ElementJSON is the wire form of a single element.
type ElementJSON struct {
	Type     string  `json:"type"`
	Points   []Point `json:"points,omitempty"`
	Center   *Point  `json:"center,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Content  string  `json:"content,omitempty"`
	Position *Point  `json:"position,omitempty"`
	Layer    string  `json:"layer,omitempty"`
}

// FileJSON is the wire form of a drawing file.
type FileJSON struct {
	Name     string        `json:"name,omitempty"`
	ByteSize int64         `json:"byte_size,omitempty"`
	Elements []ElementJSON `json:"elements"`
}

// Decode reads a JSON drawing from r.
func Decode(r io.Reader) (*Drawing, error) {
	var f FileJSON
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode drawing: %w", err)
	}

	elements, err := ElementsFromJSON(f.Elements)
	if err != nil {
		return nil, err
	}

	return &Drawing{
		Name:     f.Name,
		ByteSize: f.ByteSize,
		Elements: elements,
	}, nil
}

// LoadFile decodes the JSON drawing at path. Name defaults to the file's base
// name and ByteSize to its size on disk when the file does not declare them.
func LoadFile(path string) (*Drawing, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open drawing: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat drawing: %w", err)
	}

	d, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = filepath.Base(path)
	}
	if d.ByteSize == 0 {
		d.ByteSize = stat.Size()
	}
	return d, nil
}

// ElementsFromJSON converts wire elements into Elements, preserving order.
// The returned error wraps ErrMalformedElement or ErrUnknownElementType and
// names the offending index.
func ElementsFromJSON(in []ElementJSON) ([]Element, error) {
	elements := make([]Element, 0, len(in))
	for i, ej := range in {
		e, err := ej.Element()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// Element converts the wire form into an Element.
func (ej ElementJSON) Element() (Element, error) {
	switch ej.Type {
	case "line":
		if len(ej.Points) != 2 {
			return nil, fmt.Errorf("%w: line needs 2 points, got %d", ErrMalformedElement, len(ej.Points))
		}
		return Line{Start: ej.Points[0], End: ej.Points[1], Layer: ej.Layer}, nil
	case "circle":
		if ej.Center == nil {
			return nil, fmt.Errorf("%w: circle without center", ErrMalformedElement)
		}
		if ej.Radius < 0 {
			return nil, fmt.Errorf("%w: negative radius %g", ErrMalformedElement, ej.Radius)
		}
		return Circle{Center: *ej.Center, Radius: ej.Radius, Layer: ej.Layer}, nil
	case "text":
		var pos Point
		if ej.Position != nil {
			pos = *ej.Position
		}
		return Text{Content: ej.Content, Position: pos, Layer: ej.Layer}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownElementType, ej.Type)
	}
}

// ToJSON converts an Element into its wire form.
func ToJSON(e Element) ElementJSON {
	switch v := e.(type) {
	case Line:
		return ElementJSON{Type: "line", Points: []Point{v.Start, v.End}, Layer: v.Layer}
	case Circle:
		c := v.Center
		return ElementJSON{Type: "circle", Center: &c, Radius: v.Radius, Layer: v.Layer}
	case Text:
		p := v.Position
		return ElementJSON{Type: "text", Content: v.Content, Position: &p, Layer: v.Layer}
	default:
		return ElementJSON{Type: KindUnknown.String()}
	}
}

// ElementsToJSON converts elements into their wire form, preserving order.
func ElementsToJSON(elements []Element) []ElementJSON {
	out := make([]ElementJSON, 0, len(elements))
	for _, e := range elements {
		out = append(out, ToJSON(e))
	}
	return out
}
