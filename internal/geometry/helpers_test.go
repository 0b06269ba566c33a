package geometry

import "github.com/ironsheep/drawing-tools-mcp/internal/drawing"

// line builds a Line element from (x1,y1) to (x2,y2)
func line(x1, y1, x2, y2 float64) drawing.Line {
	return drawing.Line{
		Start: drawing.Point{X: x1, Y: y1},
		End:   drawing.Point{X: x2, Y: y2},
		Layer: "walls",
	}
}

// rectangleElements returns the four walls of an axis-aligned rectangle
func rectangleElements(x, y, w, h float64) []drawing.Element {
	return []drawing.Element{
		line(x, y, x+w, y),
		line(x, y+h, x+w, y+h),
		line(x, y, x, y+h),
		line(x+w, y, x+w, y+h),
	}
}
