package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
)

// supersample is the factor the canvas is painted at before downsampling.
const supersample = 2

// MaxSize is the largest output width or height in pixels.
const MaxSize = 4096

// maxCoord bounds canvas coordinates before they are converted to int.
const maxCoord = 1 << 30

const (
	defaultBackground = "#ffffff"
	textMarkerSize    = 3
	labelPixelSize    = 2
)

// ErrInvalidSize signals a non-positive or oversized canvas, a margin that
// leaves no room to draw, or an unusable scale.
var ErrInvalidSize = errors.New("invalid render size")

// Options controls a render.
type Options struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Margin is the blank border in output pixels.
	Margin int `json:"margin"`
	// Scale is output pixels per drawing unit; 0 fits the drawing to the canvas.
	Scale float64 `json:"scale"`
	// ShowRooms tints and numbers detected rooms.
	ShowRooms bool `json:"show_rooms"`
	// Background is a "#rrggbb" color; empty means white.
	Background string `json:"background"`
}

// Result is an encoded preview.
type Result struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	ImageBase64 string        `json:"image_base64"`
	MimeType    string        `json:"mime_type"`
	Scale       float64       `json:"scale"`
	Legend      []LegendEntry `json:"legend"`
}

// viewport maps drawing coordinates onto the supersampled, y-down canvas.
type viewport struct {
	minX, minY float64
	scale      float64
	offX, offY float64
}

// pointF maps p without rounding.
func (v viewport) pointF(p drawing.Point) (float64, float64) {
	return v.offX + (p.X-v.minX)*v.scale, v.offY + (p.Y-v.minY)*v.scale
}

// point maps p to a pixel, clamped so far-off points stay representable.
func (v viewport) point(p drawing.Point) (int, int) {
	x, y := v.pointF(p)
	return clampCoord(x), clampCoord(y)
}

func clampCoord(v float64) int {
	if math.IsNaN(v) {
		return maxCoord
	}
	return int(math.Round(math.Max(-maxCoord, math.Min(maxCoord, v))))
}

func newViewport(b drawing.Bounds, w, h, margin int, fixedScale float64) viewport {
	availW := float64(w - 2*margin)
	availH := float64(h - 2*margin)
	bw := math.Max(b.Width(), 1)
	bh := math.Max(b.Height(), 1)

	scale := fixedScale * supersample
	if fixedScale <= 0 {
		scale = math.Min(availW/bw, availH/bh)
	}

	return viewport{
		minX:  b.MinX,
		minY:  b.MinY,
		scale: scale,
		offX:  float64(margin) + (availW-b.Width()*scale)/2,
		offY:  float64(margin) + (availH-b.Height()*scale)/2,
	}
}

// Render paints elements, and optionally rooms, into a PNG preview.
func Render(elements []drawing.Element, structures geometry.StructureSet, opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > MaxSize || opts.Height > MaxSize ||
		opts.Margin < 0 || 2*opts.Margin >= opts.Width || 2*opts.Margin >= opts.Height {
		return nil, fmt.Errorf("%w: %dx%d with margin %d", ErrInvalidSize, opts.Width, opts.Height, opts.Margin)
	}
	if opts.Scale < 0 || math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidSize, opts.Scale)
	}

	bgHex := opts.Background
	if bgHex == "" {
		bgHex = defaultBackground
	}
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", opts.Background, err)
	}

	w, h := opts.Width*supersample, opts.Height*supersample
	canvas := imaging.New(w, h, toRGBA(bg))

	bounds, _ := drawing.ElementBounds(elements)
	vp := newViewport(bounds, w, h, opts.Margin*supersample, opts.Scale)
	pal := newPalette(elements)

	if opts.ShowRooms {
		for i, r := range structures.Rooms {
			x0, y0 := vp.point(drawing.Point{X: r.X, Y: r.Y})
			x1, y1 := vp.point(drawing.Point{X: r.X + r.Width, Y: r.Y + r.Height})
			fillRect(canvas, x0, y0, x1, y1, roomTint(bg, i, len(structures.Rooms)))
		}
	}

	for _, e := range elements {
		c := pal.forElement(e)
		switch v := e.(type) {
		case drawing.Line:
			x0, y0 := vp.pointF(v.Start)
			x1, y1 := vp.pointF(v.End)
			drawLine(canvas, x0, y0, x1, y1, supersample, c)
		case drawing.Circle:
			cx, cy := vp.pointF(v.Center)
			drawCircle(canvas, cx, cy, v.Radius*vp.scale, supersample, c)
		case drawing.Text:
			x, y := vp.point(v.Position)
			stamp(canvas, x, y, textMarkerSize*supersample, c)
		}
	}

	// Flip to y-up; labels go on afterwards so they read upright.
	flipped := imaging.Clone(transform.FlipV(canvas))

	if opts.ShowRooms {
		ink := color.RGBA{A: 255}
		for i, r := range structures.Rooms {
			x, y := vp.point(drawing.Point{X: r.X, Y: r.Y + r.Height})
			pad := 2 * supersample
			drawLabel(flipped, x+pad, h-1-y+pad, strconv.Itoa(i+1), labelPixelSize*supersample, ink)
		}
	}

	out := imaging.Resize(flipped, opts.Width, opts.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &Result{
		Width:       opts.Width,
		Height:      opts.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Scale:       math.Round(vp.scale/supersample*1000) / 1000,
		Legend:      pal.legend,
	}, nil
}
