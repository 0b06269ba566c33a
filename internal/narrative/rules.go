package narrative

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
)

const (
	maxTextExcerpts = 5
	maxNamedLayers  = 3

	// orthogonalMinLines is the number of horizontal and of vertical lines a
	// drawing needs to be called an orthogonal building plan.
	orthogonalMinLines = 10

	// residentialMinRooms and studioMinArea drive the purpose sub-branches.
	residentialMinRooms = 4
	studioMaxRooms      = 3
	studioMinArea       = 20.0
)

// Disclaimer closes every interpretation.
const Disclaimer = "Note: this interpretation is generated automatically from geometric " +
	"heuristics and text labels. It may not match the designer's intent; verify " +
	"important details against the original drawing."

var (
	planKeywords      = []string{"plan", "평면"}
	elevationKeywords = []string{"elevation", "입면"}
	sectionKeywords   = []string{"section", "단면"}

	// dimensionPattern matches "3000x2400", "3.5 × 2", "12.5 m", "900mm" and
	// the Korean unit names. A bare number is not a dimension.
	dimensionPattern = regexp.MustCompile(
		`(?i)\d+(?:\.\d+)?(?:\s*[x×]\s*\d+(?:\.\d+)?|\s*(?:mm|cm|m|inch|ft)\b|\s*(?:밀리|센티|미터|인치|피트))`)
)

// facts is everything the rules look at, computed once per Summarize call.
type facts struct {
	elements   []drawing.Element
	counts     drawing.Counts
	segs       geometry.Segments
	structures geometry.StructureSet
	texts      []drawing.Text
	lowerText  string
}

func newFacts(elements []drawing.Element, s geometry.StructureSet) *facts {
	f := &facts{
		elements:   elements,
		counts:     drawing.CountElements(elements),
		segs:       geometry.ClassifySegments(elements),
		structures: s,
	}

	var b strings.Builder
	for _, e := range elements {
		if t, ok := e.(drawing.Text); ok {
			f.texts = append(f.texts, t)
			b.WriteString(strings.ToLower(t.Content))
			b.WriteByte('\n')
		}
	}
	f.lowerText = b.String()
	return f
}

func (f *facts) hasKeyword(keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(f.lowerText, k) {
			return true
		}
	}
	return false
}

// circleDominant reports whether circles outnumber half the lines.
func (f *facts) circleDominant() bool {
	return f.counts.Circles > 0 && float64(f.counts.Circles) > float64(f.counts.Lines)/2
}

func (f *facts) nonEmpty() bool { return len(f.elements) > 0 }

// rule is one paragraph of the interpretation.
type rule struct {
	name    string
	applies func(*facts) bool
	write   func(*facts) string
}

// rules is evaluated in order; the order is the paragraph order.
var rules = []rule{
	{"type", (*facts).nonEmpty, drawingTypeParagraph},
	{"scale", hasAxisLines, scaleParagraph},
	{"composition", (*facts).nonEmpty, compositionParagraph},
	{"structures", hasRooms, structuresParagraph},
	{"texts", hasExcerpts, textsParagraph},
	{"dimensions", hasDimensions, dimensionsParagraph},
	{"purpose", (*facts).nonEmpty, purposeParagraph},
	{"disclaimer", always, func(*facts) string { return Disclaimer }},
}

func always(*facts) bool { return true }

func hasAxisLines(f *facts) bool {
	return len(f.segs.Horizontal) > 0 || len(f.segs.Vertical) > 0
}

func hasRooms(f *facts) bool { return len(f.structures.Rooms) > 0 }

func hasExcerpts(f *facts) bool { return len(excerpts(f.texts)) > 0 }

func hasDimensions(f *facts) bool { return len(dimensionTexts(f.texts)) > 0 }

// typeRule is one branch of the drawing-type decision. The first match wins.
type typeRule struct {
	match func(*facts) bool
	label string
}

var typeRules = []typeRule{
	{func(f *facts) bool { return f.hasKeyword(planKeywords) }, "floor plan (identified from text labels)"},
	{func(f *facts) bool { return f.hasKeyword(elevationKeywords) }, "elevation (identified from text labels)"},
	{func(f *facts) bool { return f.hasKeyword(sectionKeywords) }, "section (identified from text labels)"},
	{func(f *facts) bool {
		return len(f.segs.Horizontal) >= orthogonalMinLines && len(f.segs.Vertical) >= orthogonalMinLines
	}, "orthogonal building plan"},
	{(*facts).circleDominant, "mechanical part or equipment"},
	{always, "unknown structure"},
}

func drawingTypeParagraph(f *facts) string {
	for _, tr := range typeRules {
		if tr.match(f) {
			return "Drawing type: " + tr.label + "."
		}
	}
	return ""
}

func scaleParagraph(f *facts) string {
	w, h := f.segs.MaxLengths()
	return fmt.Sprintf("Approximate size: %s × %s units (longest horizontal × longest vertical line).",
		num(w), num(h))
}

// layerCount is one layer's element tally.
type layerCount struct {
	name  string
	count int
}

// layerCounts groups elements by layer, busiest first. Ties keep first
// appearance order.
func layerCounts(elements []drawing.Element) []layerCount {
	index := make(map[string]int)
	var out []layerCount
	for _, e := range elements {
		name := drawing.LayerOf(e)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, layerCount{name: name})
		}
		out[i].count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}

func compositionParagraph(f *facts) string {
	layers := layerCounts(f.elements)

	var b strings.Builder
	fmt.Fprintf(&b, "Composition: %s, %s and %s across %s.",
		plural(f.counts.Lines, "line", "lines"),
		plural(f.counts.Circles, "circle", "circles"),
		plural(f.counts.Texts, "text label", "text labels"),
		plural(len(layers), "layer", "layers"))

	top := layers
	if len(top) > maxNamedLayers {
		top = top[:maxNamedLayers]
	}
	names := make([]string, 0, len(top))
	for _, l := range top {
		names = append(names, fmt.Sprintf("%s (%d)", l.name, l.count))
	}
	fmt.Fprintf(&b, " Main layers: %s.", strings.Join(names, ", "))
	return b.String()
}

func describeRoom(r geometry.Room) string {
	return fmt.Sprintf("%s × %s (area %s)", num(r.Width), num(r.Height), num(r.Area()))
}

func structuresParagraph(f *facts) string {
	s := f.structures
	largest, _ := s.LargestRoom()
	smallest, _ := s.SmallestRoom()

	var b strings.Builder
	fmt.Fprintf(&b, "Structures: %s detected. Largest room: %s. Smallest room: %s.",
		plural(len(s.Rooms), "room", "rooms"), describeRoom(largest), describeRoom(smallest))
	if len(s.Corridors) > 0 {
		fmt.Fprintf(&b, " %s identified.", plural(len(s.Corridors), "corridor", "corridors"))
	}
	return b.String()
}

// excerpts returns up to maxTextExcerpts labels longer than one character.
func excerpts(texts []drawing.Text) []string {
	var out []string
	for _, t := range texts {
		if utf8.RuneCountInString(t.Content) <= 1 {
			continue
		}
		out = append(out, t.Content)
		if len(out) == maxTextExcerpts {
			break
		}
	}
	return out
}

func textsParagraph(f *facts) string {
	quoted := make([]string, 0, maxTextExcerpts)
	for _, s := range excerpts(f.texts) {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return "Text labels: " + strings.Join(quoted, ", ") + "."
}

// dimensionTexts returns every label that contains a measurement.
func dimensionTexts(texts []drawing.Text) []string {
	var out []string
	for _, t := range texts {
		if dimensionPattern.MatchString(t.Content) {
			out = append(out, t.Content)
		}
	}
	return out
}

func dimensionsParagraph(f *facts) string {
	return "Dimension info: " + strings.Join(dimensionTexts(f.texts), "; ") + "."
}

// roomUse describes what the room layout suggests, or "" when it suggests
// nothing in particular.
func roomUse(rooms []geometry.Room) string {
	if len(rooms) >= residentialMinRooms {
		return fmt.Sprintf("the layout of %d rooms suggests a residential or office space", len(rooms))
	}
	if len(rooms) <= studioMaxRooms {
		for _, r := range rooms {
			if r.Area() > studioMinArea {
				return "a few large rooms suggest a commercial space or studio"
			}
		}
	}
	return ""
}

func withRoomUse(base string, rooms []geometry.Room) string {
	if use := roomUse(rooms); use != "" {
		return base + "; " + use
	}
	return base
}

func purposeParagraph(f *facts) string {
	rooms := f.structures.Rooms

	var purpose string
	switch {
	case f.hasKeyword(planKeywords):
		purpose = withRoomUse("an architectural floor plan", rooms)
	case f.hasKeyword(elevationKeywords):
		purpose = "a building facade or elevation study"
	case f.circleDominant():
		purpose = "a mechanical part or equipment drawing"
	case len(rooms) > 0:
		purpose = withRoomUse("a building with multiple rooms", rooms)
	default:
		purpose = "a general technical drawing"
	}
	return "Likely purpose: " + purpose + "."
}
