package raster

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

// Layer is the layer name given to extracted lines.
const Layer = "raster"

// alignSlack is how far, in pixels, the ends of runs in neighbouring rows may
// differ and still belong to the same stroke.
const alignSlack = 2

// Options controls extraction.
type Options struct {
	// Threshold is the gray level below which a pixel is ink. Default 128.
	Threshold uint8 `json:"threshold"`
	// MinLength is the shortest run, in pixels, kept as a line. Default 20.
	MinLength int `json:"min_length"`
	// MaxThickness is the thickest stroke, in pixels, kept as a line. Default 10.
	MaxThickness int `json:"max_thickness"`
	// UnitsPerPixel scales pixel distances into drawing units. Default 1.
	UnitsPerPixel float64 `json:"units_per_pixel"`
	// Circles also recovers circular outlines. Short lines that only trace
	// a recovered circle's outline are then dropped.
	Circles bool `json:"circles"`
	// MinRadius and MaxRadius bound circle radii in pixels. Defaults 5 and 50.
	MinRadius int `json:"min_radius"`
	MaxRadius int `json:"max_radius"`
}

func (o *Options) applyDefaults() {
	if o.Threshold == 0 {
		o.Threshold = 128
	}
	if o.MinLength <= 0 {
		o.MinLength = 20
	}
	if o.MaxThickness <= 0 {
		o.MaxThickness = 10
	}
	if o.UnitsPerPixel <= 0 {
		o.UnitsPerPixel = 1
	}
	if o.MinRadius <= 0 {
		o.MinRadius = 5
	}
	if o.MaxRadius <= 0 {
		o.MaxRadius = 50
	}
}

// Result holds the extracted elements.
type Result struct {
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Elements   []drawing.Element `json:"-"`
	Horizontal int               `json:"horizontal"`
	Vertical   int               `json:"vertical"`
	Circles    int               `json:"circles"`
}

// run is a maximal ink interval [lo, hi] on one scan line.
type run struct{ lo, hi int }

// stroke is a stack of aligned runs on consecutive scan lines.
type stroke struct {
	lo, hi      int
	first, last int
}

func (s stroke) thickness() int { return s.last - s.first + 1 }

// ExtractElements finds horizontal and vertical lines in img. Horizontal
// lines come first, top of the image first; then vertical lines, left first;
// then circles when Options.Circles is set.
func ExtractElements(img image.Image, opts Options) *Result {
	opts.applyDefaults()

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray := effect.Grayscale(img)
	binary := segment.Threshold(gray, opts.Threshold)

	bb := binary.Bounds()
	ink := func(x, y int) bool {
		return binary.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y == 0
	}

	horizontal := collectStrokes(height, width, opts.MinLength, func(line, i int) bool { return ink(i, line) })
	vertical := collectStrokes(width, height, opts.MinLength, func(line, i int) bool { return ink(line, i) })

	var circles []pixelCircle
	if opts.Circles {
		circles = detectCircles(ink, width, height, opts.MinRadius, opts.MaxRadius)
	}
	// a stroke whose ends and middle all sit on a circle is part of its outline
	traces := func(x0, y0, x1, y1 float64) bool {
		return len(circles) > 0 &&
			onCircle(circles, x0, y0) && onCircle(circles, x1, y1) && onCircle(circles, (x0+x1)/2, (y0+y1)/2)
	}

	res := &Result{Width: width, Height: height, Elements: make([]drawing.Element, 0)}
	u := opts.UnitsPerPixel

	// image rows grow downward; drawing y grows upward
	toY := func(py float64) float64 { return (float64(height-1) - py) * u }

	for _, s := range horizontal {
		if s.thickness() > opts.MaxThickness {
			continue
		}
		if c := center(s); traces(float64(s.lo), c, float64(s.hi), c) {
			continue
		}
		y := toY(center(s))
		res.Elements = append(res.Elements, drawing.Line{
			Start: drawing.Point{X: float64(s.lo) * u, Y: y},
			End:   drawing.Point{X: float64(s.hi) * u, Y: y},
			Layer: Layer,
		})
		res.Horizontal++
	}
	for _, s := range vertical {
		if s.thickness() > opts.MaxThickness {
			continue
		}
		if c := center(s); traces(c, float64(s.lo), c, float64(s.hi)) {
			continue
		}
		x := center(s) * u
		res.Elements = append(res.Elements, drawing.Line{
			Start: drawing.Point{X: x, Y: toY(float64(s.hi))},
			End:   drawing.Point{X: x, Y: toY(float64(s.lo))},
			Layer: Layer,
		})
		res.Vertical++
	}
	for _, c := range circles {
		res.Elements = append(res.Elements, drawing.Circle{
			Center: drawing.Point{X: float64(c.x) * u, Y: toY(float64(c.y))},
			Radius: float64(c.r) * u,
			Layer:  Layer,
		})
		res.Circles++
	}

	return res
}

func center(s stroke) float64 {
	return math.Round(float64(s.first+s.last)/2*10) / 10
}

// collectStrokes scans lines 0..lines-1, each of the given length, for ink
// runs of at least minLength and merges aligned runs on consecutive lines.
// Strokes are returned in order of their first line.
func collectStrokes(lines, length, minLength int, ink func(line, i int) bool) []stroke {
	var done, open []stroke

	for line := 0; line < lines; line++ {
		runs := scanRuns(length, minLength, func(i int) bool { return ink(line, i) })

		next := make([]stroke, 0, len(runs))
		used := make([]bool, len(open))
		for _, r := range runs {
			matched := false
			for k, s := range open {
				if used[k] || !aligned(s, r) {
					continue
				}
				used[k] = true
				s.lo = min(s.lo, r.lo)
				s.hi = max(s.hi, r.hi)
				s.last = line
				next = append(next, s)
				matched = true
				break
			}
			if !matched {
				next = append(next, stroke{lo: r.lo, hi: r.hi, first: line, last: line})
			}
		}
		for k, s := range open {
			if !used[k] {
				done = append(done, s)
			}
		}
		open = next
	}
	done = append(done, open...)

	sort.SliceStable(done, func(i, j int) bool {
		if done[i].first != done[j].first {
			return done[i].first < done[j].first
		}
		return done[i].lo < done[j].lo
	})
	return done
}

// scanRuns returns the ink runs of at least minLength pixels.
func scanRuns(length, minLength int, ink func(i int) bool) []run {
	var runs []run
	start := -1
	for i := 0; i <= length; i++ {
		if i < length && ink(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minLength {
			runs = append(runs, run{lo: start, hi: i - 1})
		}
		start = -1
	}
	return runs
}

func aligned(s stroke, r run) bool {
	return abs(s.lo-r.lo) <= alignSlack && abs(s.hi-r.hi) <= alignSlack
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
