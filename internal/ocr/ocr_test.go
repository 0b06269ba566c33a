package ocr

import (
	"errors"
	"image"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

func TestToTextElements(t *testing.T) {
	words := []Word{
		{Text: "Floor Plan A-1", Confidence: 0.93, Box: image.Rect(10, 5, 120, 25)},
		{Text: "   ", Confidence: 0.99, Box: image.Rect(0, 0, 5, 5)},
		{Text: "smudge", Confidence: 0.2, Box: image.Rect(50, 50, 60, 60)},
		{Text: " 3000x2400 ", Confidence: 0.8, Box: image.Rect(30, 80, 90, 95)},
	}

	got := ToTextElements(words, 100, Options{MinConfidence: 0.5, UnitsPerPixel: 2})

	want := []drawing.Text{
		{Content: "Floor Plan A-1", Position: drawing.Point{X: 20, Y: 150}, Layer: Layer},
		{Content: "3000x2400", Position: drawing.Point{X: 60, Y: 10}, Layer: Layer},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestToTextElements_Empty(t *testing.T) {
	got := ToTextElements(nil, 100, Options{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestOptions_Defaults(t *testing.T) {
	var o Options
	o.applyDefaults()

	if o.Language != "eng" || o.Level != LevelLine || o.UnitsPerPixel != 1 {
		t.Errorf("defaults: got %+v", o)
	}

	o = Options{Language: "eng+kor"}
	if got := o.languages(); !reflect.DeepEqual(got, []string{"eng", "kor"}) {
		t.Errorf("languages: got %v", got)
	}
}

func TestExtractTextElements_Errors(t *testing.T) {
	if _, err := ExtractTextElements("", Options{}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty path: got %v, want ErrEmptyPath", err)
	}

	_, err := ExtractTextElements(filepath.Join(t.TempDir(), "missing.png"), Options{})
	if err == nil {
		t.Fatal("expected error for missing image")
	}
	if !Available() && !errors.Is(err, ErrUnavailable) {
		t.Errorf("non-cgo build: got %v, want ErrUnavailable", err)
	}
}
