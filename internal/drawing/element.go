package drawing

import "math"

// Kind identifies the variant of an Element.
type Kind int

const (
	KindUnknown Kind = iota
	KindLine
	KindCircle
	KindText
)

// String returns the JSON type tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Point is a 2D position in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DefaultLayer names the layer of elements that carry none.
const DefaultLayer = "default"

// LayerOf returns e's layer name, or DefaultLayer when it has none.
func LayerOf(e Element) string {
	if n := e.LayerName(); n != "" {
		return n
	}
	return DefaultLayer
}

// Element is a primitive drawing element. The set of implementations is
// closed: Line, Circle and Text.
type Element interface {
	Kind() Kind
	LayerName() string
	element()
}

// Line is a straight segment between two points.
type Line struct {
	Start Point
	End   Point
	Layer string
}

func (Line) Kind() Kind          { return KindLine }
func (l Line) LayerName() string { return l.Layer }
func (Line) element()            {}

// Length returns the segment length.
func (l Line) Length() float64 { return l.Start.Distance(l.End) }

// Circle is a full circle.
type Circle struct {
	Center Point
	Radius float64
	Layer  string
}

func (Circle) Kind() Kind          { return KindCircle }
func (c Circle) LayerName() string { return c.Layer }
func (Circle) element()            {}

// Text is a label anchored at Position.
type Text struct {
	Content  string
	Position Point
	Layer    string
}

func (Text) Kind() Kind          { return KindText }
func (t Text) LayerName() string { return t.Layer }
func (Text) element()            {}

// Counts holds per-kind element totals.
type Counts struct {
	Lines   int `json:"lines"`
	Circles int `json:"circles"`
	Texts   int `json:"texts"`
}

// Total returns the number of counted elements.
func (c Counts) Total() int { return c.Lines + c.Circles + c.Texts }

// CountElements tallies elements by kind.
func CountElements(elements []Element) Counts {
	var c Counts
	for _, e := range elements {
		switch e.(type) {
		case Line:
			c.Lines++
		case Circle:
			c.Circles++
		case Text:
			c.Texts++
		}
	}
	return c
}

// Bounds is an axis-aligned box in drawing units, min corner first.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// ElementBounds returns the box enclosing every element. Circles contribute
// their full extent, text contributes its anchor point. ok is false when
// elements is empty.
func ElementBounds(elements []Element) (b Bounds, ok bool) {
	extend := func(x, y float64) {
		if !ok {
			b = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
			ok = true
			return
		}
		b.MinX = math.Min(b.MinX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxX = math.Max(b.MaxX, x)
		b.MaxY = math.Max(b.MaxY, y)
	}

	for _, e := range elements {
		switch v := e.(type) {
		case Line:
			extend(v.Start.X, v.Start.Y)
			extend(v.End.X, v.End.Y)
		case Circle:
			extend(v.Center.X-v.Radius, v.Center.Y-v.Radius)
			extend(v.Center.X+v.Radius, v.Center.Y+v.Radius)
		case Text:
			extend(v.Position.X, v.Position.Y)
		}
	}
	return b, ok
}

// Drawing is a decoded drawing together with the file metadata that is passed
// through unchanged into reports.
type Drawing struct {
	Name     string
	ByteSize int64
	Elements []Element
}

// Counts tallies the drawing's elements by kind.
func (d *Drawing) Counts() Counts { return CountElements(d.Elements) }

// Bounds returns the extent of the drawing's elements.
func (d *Drawing) Bounds() (Bounds, bool) { return ElementBounds(d.Elements) }
