package render

import (
	"image"
	"image/color"
	"math"
)

func setPixel(img *image.NRGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// stamp paints a size×size square centered on (x, y).
func stamp(img *image.NRGBA, x, y, size int, c color.RGBA) {
	lo := -(size - 1) / 2
	for dy := lo; dy < lo+size; dy++ {
		for dx := lo; dx < lo+size; dx++ {
			setPixel(img, x+dx, y+dy, c)
		}
	}
}

// drawLine paints a Bresenham line with a square pen of the given width.
// The segment is clipped to the canvas first, so off-canvas length costs
// nothing.
func drawLine(img *image.NRGBA, fx0, fy0, fx1, fy1 float64, width int, c color.RGBA) {
	if !finite(fx0, fy0, fx1, fy1) {
		return
	}
	b := img.Bounds()
	pad := float64(width)
	fx0, fy0, fx1, fy1, ok := clipSegment(fx0, fy0, fx1, fy1,
		float64(b.Min.X)-pad, float64(b.Min.Y)-pad, float64(b.Max.X)+pad, float64(b.Max.Y)+pad)
	if !ok {
		return
	}

	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		stamp(img, x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to the rectangle [minX,maxX]×[minY,maxY]
// (Liang-Barsky). ok is false when nothing of the segment is inside.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, 0, 0, 0, false
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawCircle paints a circle outline. Columns are swept for the flat parts
// of the curve and rows for the steep parts, both limited to the canvas, so
// the cost follows the canvas size rather than the radius.
func drawCircle(img *image.NRGBA, cx, cy, r float64, width int, c color.RGBA) {
	if !finite(cx, cy, r) {
		return
	}
	b := img.Bounds()
	if r < 0.5 {
		if math.Abs(cx) < float64(maxCoord) && math.Abs(cy) < float64(maxCoord) {
			stamp(img, int(math.Round(cx)), int(math.Round(cy)), width, c)
		}
		return
	}

	pad := float64(width)
	if cx+r < float64(b.Min.X)-pad || cx-r > float64(b.Max.X)+pad ||
		cy+r < float64(b.Min.Y)-pad || cy-r > float64(b.Max.Y)+pad {
		return
	}

	xlo := int(math.Max(math.Ceil(cx-r), float64(b.Min.X-width)))
	xhi := int(math.Min(math.Floor(cx+r), float64(b.Max.X+width)))
	for x := xlo; x <= xhi; x++ {
		d := math.Sqrt(math.Max(r*r-(float64(x)-cx)*(float64(x)-cx), 0))
		stampClipped(img, float64(x), cy-d, width, c)
		stampClipped(img, float64(x), cy+d, width, c)
	}

	ylo := int(math.Max(math.Ceil(cy-r), float64(b.Min.Y-width)))
	yhi := int(math.Min(math.Floor(cy+r), float64(b.Max.Y+width)))
	for y := ylo; y <= yhi; y++ {
		d := math.Sqrt(math.Max(r*r-(float64(y)-cy)*(float64(y)-cy), 0))
		stampClipped(img, cx-d, float64(y), width, c)
		stampClipped(img, cx+d, float64(y), width, c)
	}
}

// stampClipped stamps at a float position, skipping positions far off the
// canvas.
func stampClipped(img *image.NRGBA, x, y float64, width int, c color.RGBA) {
	b := img.Bounds()
	pad := float64(width)
	if x < float64(b.Min.X)-pad || x > float64(b.Max.X)+pad ||
		y < float64(b.Min.Y)-pad || y > float64(b.Max.Y)+pad {
		return
	}
	stamp(img, int(math.Round(x)), int(math.Round(y)), width, c)
}

// fillRect fills the half-open pixel rectangle [x0,x1)×[y0,y1).
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// digitGlyphs is a 3x5 pixel font for room numbers.
var digitGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel stamps digits with their top-left corner at (x, y), each font
// pixel scaled to a px×px block. Non-digits leave a gap.
func drawLabel(img *image.NRGBA, x, y int, text string, px int, c color.RGBA) {
	advance := 4 * px
	cx := x
	for _, ch := range text {
		glyph, ok := digitGlyphs[ch]
		if !ok {
			cx += advance
			continue
		}
		for row, line := range glyph {
			for col, bit := range line {
				if bit == '1' {
					fillRect(img, cx+col*px, y+row*px, cx+(col+1)*px, y+(row+1)*px, c)
				}
			}
		}
		cx += advance
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
