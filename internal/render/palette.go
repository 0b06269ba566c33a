package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

const (
	layerSaturation = 0.85
	layerValue      = 0.65

	// roomTintAmount is how far a room tint moves from the background toward
	// the room's hue.
	roomTintAmount = 0.2
)

// LegendEntry pairs a layer name with its stroke color.
type LegendEntry struct {
	Layer string `json:"layer"`
	Color string `json:"color"`
}

// palette assigns a color to each layer.
type palette struct {
	index  map[string]int
	colors []colorful.Color
	legend []LegendEntry
}

// newPalette spreads hues evenly over the layers of elements, in order of
// first appearance.
func newPalette(elements []drawing.Element) *palette {
	p := &palette{index: make(map[string]int)}
	var names []string
	for _, e := range elements {
		name := drawing.LayerOf(e)
		if _, ok := p.index[name]; ok {
			continue
		}
		p.index[name] = len(names)
		names = append(names, name)
	}

	for i, name := range names {
		hue := 360 * float64(i) / float64(len(names))
		c := colorful.Hsv(hue, layerSaturation, layerValue)
		p.colors = append(p.colors, c)
		p.legend = append(p.legend, LegendEntry{Layer: name, Color: c.Hex()})
	}
	return p
}

func (p *palette) forElement(e drawing.Element) color.RGBA {
	return toRGBA(p.colors[p.index[drawing.LayerOf(e)]])
}

// roomTint returns the fill for the i-th of n rooms over background bg.
func roomTint(bg colorful.Color, i, n int) color.RGBA {
	hue := 360 * float64(i) / float64(n)
	return toRGBA(bg.BlendLab(colorful.Hsv(hue, 0.6, 0.9), roomTintAmount).Clamped())
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
