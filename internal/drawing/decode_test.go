package drawing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDrawingJSON = `{
  "name": "plan.dwg",
  "byte_size": 2048,
  "elements": [
    {"type": "line", "points": [{"x": 0, "y": 0}, {"x": 10, "y": 0}], "layer": "walls"},
    {"type": "circle", "center": {"x": 5, "y": 5}, "radius": 1.5, "layer": "fixtures"},
    {"type": "text", "content": "Floor Plan", "position": {"x": 1, "y": 9}}
  ]
}`

// writeTestDrawingFile writes content to a temp file and returns its path
func writeTestDrawingFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "drawing.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write drawing: %v", err)
	}
	return path
}

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(sampleDrawingJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if d.Name != "plan.dwg" {
		t.Errorf("Name: got %q, want plan.dwg", d.Name)
	}
	if d.ByteSize != 2048 {
		t.Errorf("ByteSize: got %d, want 2048", d.ByteSize)
	}
	if len(d.Elements) != 3 {
		t.Fatalf("Elements: got %d, want 3", len(d.Elements))
	}

	line, ok := d.Elements[0].(Line)
	if !ok {
		t.Fatalf("element 0: got %T, want Line", d.Elements[0])
	}
	if line.End.X != 10 || line.Layer != "walls" {
		t.Errorf("line: got %+v", line)
	}

	circle, ok := d.Elements[1].(Circle)
	if !ok {
		t.Fatalf("element 1: got %T, want Circle", d.Elements[1])
	}
	if circle.Radius != 1.5 || circle.Center.X != 5 {
		t.Errorf("circle: got %+v", circle)
	}

	text, ok := d.Elements[2].(Text)
	if !ok {
		t.Fatalf("element 2: got %T, want Text", d.Elements[2])
	}
	if text.Content != "Floor Plan" || text.Layer != "" {
		t.Errorf("text: got %+v", text)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{
			"line with one point",
			`{"elements":[{"type":"line","points":[{"x":0,"y":0}]}]}`,
			ErrMalformedElement,
		},
		{
			"line with three points",
			`{"elements":[{"type":"line","points":[{"x":0,"y":0},{"x":1,"y":0},{"x":2,"y":0}]}]}`,
			ErrMalformedElement,
		},
		{
			"circle without center",
			`{"elements":[{"type":"circle","radius":2}]}`,
			ErrMalformedElement,
		},
		{
			"negative radius",
			`{"elements":[{"type":"circle","center":{"x":0,"y":0},"radius":-1}]}`,
			ErrMalformedElement,
		},
		{
			"unknown type",
			`{"elements":[{"type":"spline"}]}`,
			ErrUnknownElementType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.json))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFile_DefaultsMetadata(t *testing.T) {
	content := `{"elements":[{"type":"text","content":"A","position":{"x":0,"y":0}}]}`
	path := writeTestDrawingFile(t, content)

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if d.Name != "drawing.json" {
		t.Errorf("Name: got %q, want drawing.json", d.Name)
	}
	if d.ByteSize != int64(len(content)) {
		t.Errorf("ByteSize: got %d, want %d", d.ByteSize, len(content))
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty path: got %v, want ErrEmptyPath", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestElementsToJSON_PreservesOrderAndFields(t *testing.T) {
	d, err := Decode(strings.NewReader(sampleDrawingJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	wire := ElementsToJSON(d.Elements)
	types := make([]string, len(wire))
	for i, w := range wire {
		types[i] = w.Type
	}
	if got := strings.Join(types, ","); got != "line,circle,text" {
		t.Errorf("types: got %s, want line,circle,text", got)
	}
	if wire[1].Center == nil || wire[1].Center.Y != 5 {
		t.Errorf("circle center lost: %+v", wire[1])
	}
}
