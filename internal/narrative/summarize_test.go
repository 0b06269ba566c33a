package narrative

import (
	"strings"
	"testing"

	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
)

func line(x1, y1, x2, y2 float64, layer string) drawing.Line {
	return drawing.Line{Start: drawing.Point{X: x1, Y: y1}, End: drawing.Point{X: x2, Y: y2}, Layer: layer}
}

func text(content string) drawing.Text {
	return drawing.Text{Content: content, Layer: "annotations"}
}

func rectangle(x, y, w, h float64) []drawing.Element {
	return []drawing.Element{
		line(x, y, x+w, y, "walls"),
		line(x, y+h, x+w, y+h, "walls"),
		line(x, y, x, y+h, "walls"),
		line(x+w, y, x+w, y+h, "walls"),
	}
}

// paragraphs splits an interpretation into its paragraphs
func paragraphs(s string) []string {
	return strings.Split(s, paragraphSeparator)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, geometry.EmptyStructureSet())

	if got != Disclaimer {
		t.Errorf("empty drawing should yield only the disclaimer, got:\n%s", got)
	}
}

func TestSummarize_PlanKeywordWins(t *testing.T) {
	elements := []drawing.Element{text("Floor Plan A-1")}
	// Enough circles to trigger the mechanical fallback without the keyword.
	for i := 0; i < 5; i++ {
		elements = append(elements, drawing.Circle{Radius: 1})
	}

	got := Summarize(elements, geometry.EmptyStructureSet())

	first := paragraphs(got)[0]
	if !strings.HasPrefix(first, "Drawing type: floor plan") {
		t.Errorf("type paragraph: got %q", first)
	}
	if !strings.Contains(got, "Likely purpose: an architectural floor plan") {
		t.Errorf("purpose should follow the plan keyword:\n%s", got)
	}
}

func TestSummarize_DrawingType(t *testing.T) {
	grid := make([]drawing.Element, 0, 20)
	for i := 0; i < 10; i++ {
		grid = append(grid, line(0, float64(i*2), 30, float64(i*2), ""))
		grid = append(grid, line(float64(i*3), 0, float64(i*3), 18, ""))
	}

	tests := []struct {
		name     string
		elements []drawing.Element
		want     string
	}{
		{"korean plan keyword", []drawing.Element{text("1층 평면도")}, "floor plan"},
		{"elevation keyword", []drawing.Element{text("NORTH ELEVATION")}, "elevation"},
		{"korean section keyword", []drawing.Element{text("A-A 단면")}, "section"},
		{"orthogonal grid", grid, "orthogonal building plan"},
		{"circles dominate", []drawing.Element{
			line(0, 0, 5, 5, ""),
			drawing.Circle{Radius: 1},
		}, "mechanical part or equipment"},
		{"diagonals only", []drawing.Element{line(0, 0, 5, 5, "")}, "unknown structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paragraphs(Summarize(tt.elements, geometry.Identify(tt.elements)))[0]
			want := "Drawing type: " + tt.want
			if !strings.HasPrefix(got, want) {
				t.Errorf("got %q, want prefix %q", got, want)
			}
		})
	}
}

func TestSummarize_Purpose(t *testing.T) {
	tests := []struct {
		name     string
		elements []drawing.Element
		want     string
	}{
		{"plan keyword", []drawing.Element{text("Floor Plan A-1")}, "an architectural floor plan"},
		{"elevation keyword", []drawing.Element{text("NORTH ELEVATION")}, "a building facade or elevation study"},
		{"circles dominate", []drawing.Element{
			line(0, 0, 5, 5, ""),
			drawing.Circle{Radius: 1},
		}, "a mechanical part or equipment drawing"},
		{"rooms without keyword", rectangle(0, 0, 10, 5), "a building with multiple rooms"},
		{"diagonals only", []drawing.Element{line(0, 0, 5, 5, "")}, "a general technical drawing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paragraphs(Summarize(tt.elements, geometry.Identify(tt.elements)))
			var purpose string
			for _, p := range got {
				if strings.HasPrefix(p, "Likely purpose:") {
					purpose = p
				}
			}
			want := "Likely purpose: " + tt.want
			if !strings.HasPrefix(purpose, want) {
				t.Errorf("got %q, want prefix %q", purpose, want)
			}
		})
	}
}

func TestSummarize_ParagraphOrder(t *testing.T) {
	elements := rectangle(0, 0, 10, 5)
	elements = append(elements, text("Kitchen"), text("3000x2400"), text("A"))

	got := paragraphs(Summarize(elements, geometry.Identify(elements)))

	prefixes := []string{
		"Drawing type:",
		"Approximate size:",
		"Composition:",
		"Structures:",
		"Text labels:",
		"Dimension info:",
		"Likely purpose:",
		"Note:",
	}
	if len(got) != len(prefixes) {
		t.Fatalf("paragraphs: got %d, want %d:\n%s", len(got), len(prefixes), strings.Join(got, "\n--\n"))
	}
	for i, p := range prefixes {
		if !strings.HasPrefix(got[i], p) {
			t.Errorf("paragraph %d: got %q, want prefix %q", i, got[i], p)
		}
	}
}

func TestSummarize_Details(t *testing.T) {
	elements := rectangle(0, 0, 10, 5)
	elements = append(elements, text("Kitchen"), text("B"), text("12.5 m"))

	got := Summarize(elements, geometry.Identify(elements))

	wants := []string{
		"Approximate size: 10.0 × 5.0 units",
		"Composition: 4 lines, 0 circles and 3 text labels across 2 layers.",
		"Main layers: walls (4), annotations (3).",
		"Structures: 1 room detected. Largest room: 10.0 × 5.0 (area 50.0).",
		`Text labels: "Kitchen", "12.5 m".`,
		"Dimension info: 12.5 m.",
		"Likely purpose: a building with multiple rooms; a few large rooms suggest a commercial space or studio.",
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in:\n%s", w, got)
		}
	}
	if strings.Contains(got, "corridor") {
		t.Errorf("no corridors expected:\n%s", got)
	}
}

func TestSummarize_CorridorsAndRounding(t *testing.T) {
	elements := rectangle(0, 0, 12.34, 2.06)

	got := Summarize(elements, geometry.Identify(elements))

	for _, w := range []string{"12.3 × 2.1", "1 corridor identified."} {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in:\n%s", w, got)
		}
	}
}

func TestSummarize_ResidentialBranch(t *testing.T) {
	s := geometry.StructureSet{Rooms: []geometry.Room{
		{Width: 3, Height: 3}, {Width: 4, Height: 3}, {Width: 2, Height: 2}, {Width: 5, Height: 2},
	}}
	elements := []drawing.Element{line(0, 0, 5, 0, "")}

	got := Summarize(elements, s)
	if !strings.Contains(got, "the layout of 4 rooms suggests a residential or office space") {
		t.Errorf("expected residential branch:\n%s", got)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	elements := rectangle(0, 0, 20, 10)
	elements = append(elements, rectangle(20, 0, 10, 10)...)
	elements = append(elements, text("Plan"), drawing.Circle{Radius: 2, Layer: "fixtures"})
	s := geometry.Identify(elements)

	first := Summarize(elements, s)
	for i := 0; i < 5; i++ {
		if got := Summarize(elements, s); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestLayerCounts_StableOrder(t *testing.T) {
	elements := []drawing.Element{
		line(0, 0, 1, 0, "b"),
		line(0, 0, 1, 0, "a"),
		line(0, 0, 1, 0, ""),
		line(0, 0, 1, 0, "a"),
		line(0, 0, 1, 0, "c"),
	}

	got := layerCounts(elements)
	want := []layerCount{{"a", 2}, {"b", 1}, {drawing.DefaultLayer, 1}, {"c", 1}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("layer %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDimensionPattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"3000x2400", true},
		{"3.5 × 2", true},
		{"1200 X 900", true},
		{"900mm", true},
		{"12.5 m", true},
		{"6 ft", true},
		{"30 센티", true},
		{"3000", false},
		{"12.5", false},
		{"Room 101", false},
		{"Floor Plan A-1", false},
		{"12 monkeys", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := dimensionPattern.MatchString(tt.in); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummarizeDocument(t *testing.T) {
	long := strings.Repeat("가", 180)
	doc := &document.Document{Pages: []document.Page{
		{Sections: []document.Section{
			document.Paragraph{Text: long},
			document.Table{Rows: [][]string{{"a", "b"}}},
		}},
		{Sections: []document.Section{
			document.Image{Caption: "photo"},
			document.Paragraph{Text: "second"},
			document.Paragraph{Text: "third"},
			document.Paragraph{Text: "fourth"},
		}},
	}}

	got := SummarizeDocument(doc)
	ps := paragraphs(got)

	if ps[0] != "Document: 2 pages with 6 sections." {
		t.Errorf("header: got %q", ps[0])
	}
	if ps[1] != "Sections: 4 paragraphs, 1 table and 1 image." {
		t.Errorf("counts: got %q", ps[1])
	}
	if want := "Content preview: " + strings.Repeat("가", 180) + "\na b\nsecond\nthird\nfo..."; ps[2] != want {
		t.Errorf("preview: got %q", ps[2])
	}
	if !strings.Contains(ps[3], "1. "+strings.Repeat("가", 100)+"...") {
		t.Errorf("first paragraph preview not truncated: %q", ps[3])
	}
	if strings.Contains(ps[3], "fourth") {
		t.Errorf("only three paragraph previews expected: %q", ps[3])
	}
	if ps[len(ps)-1] != Disclaimer {
		t.Errorf("last paragraph should be the disclaimer")
	}
}

func TestSummarizeDocument_Nil(t *testing.T) {
	if got := SummarizeDocument(nil); got != Disclaimer {
		t.Errorf("got %q", got)
	}
}
