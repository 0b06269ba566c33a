package geometry

import (
	"math"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

// axisTolerance is the largest coordinate drift along the fixed axis for a
// line to count as horizontal or vertical.
const axisTolerance = 0.1

// HSegment is a horizontal line segment with X1 <= X2.
type HSegment struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y  float64 `json:"y"`
}

// Length returns X2 - X1.
func (s HSegment) Length() float64 { return s.X2 - s.X1 }

// VSegment is a vertical line segment with Y1 <= Y2.
type VSegment struct {
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
	X  float64 `json:"x"`
}

// Length returns Y2 - Y1.
func (s VSegment) Length() float64 { return s.Y2 - s.Y1 }

// Segments holds the axis-aligned line work of a drawing.
type Segments struct {
	Horizontal []HSegment `json:"horizontal"`
	Vertical   []VSegment `json:"vertical"`
}

// ClassifySegments partitions the Line elements into horizontal and vertical
// segments, in input order.
//
// Lines that are neither (diagonals) or both (zero-length) are dropped. Each
// kept segment is normalized so its free-axis extent runs from min to max,
// which makes later overlap tests independent of drawing direction. The fixed
// coordinate is taken from the line's start point. Circles and text are
// ignored.
func ClassifySegments(elements []drawing.Element) Segments {
	segs := Segments{
		Horizontal: make([]HSegment, 0),
		Vertical:   make([]VSegment, 0),
	}

	for _, e := range elements {
		line, ok := e.(drawing.Line)
		if !ok {
			continue
		}

		dx := math.Abs(line.End.X - line.Start.X)
		dy := math.Abs(line.End.Y - line.Start.Y)
		horizontal := dy < axisTolerance
		vertical := dx < axisTolerance

		switch {
		case horizontal && vertical:
			// Degenerate: a point, not a wall.
		case horizontal:
			segs.Horizontal = append(segs.Horizontal, HSegment{
				X1: math.Min(line.Start.X, line.End.X),
				X2: math.Max(line.Start.X, line.End.X),
				Y:  line.Start.Y,
			})
		case vertical:
			segs.Vertical = append(segs.Vertical, VSegment{
				Y1: math.Min(line.Start.Y, line.End.Y),
				Y2: math.Max(line.Start.Y, line.End.Y),
				X:  line.Start.X,
			})
		}
	}

	return segs
}

// MaxLengths returns the longest horizontal and the longest vertical segment
// length. Either is 0 when the corresponding set is empty.
func (s Segments) MaxLengths() (width, height float64) {
	for _, h := range s.Horizontal {
		width = math.Max(width, h.Length())
	}
	for _, v := range s.Vertical {
		height = math.Max(height, v.Length())
	}
	return width, height
}
