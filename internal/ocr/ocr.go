package ocr

import (
	"errors"
	"image"
	"strings"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

// Layer is the layer name given to recognized text.
const Layer = "ocr"

var (
	// ErrUnavailable is returned by builds without Tesseract support.
	ErrUnavailable = errors.New("ocr not available in this build")
	// ErrEmptyPath signals a recognition request without an image path.
	ErrEmptyPath = errors.New("empty image path")
)

// Level selects the granularity of recognized boxes.
type Level string

const (
	LevelWord Level = "word"
	LevelLine Level = "line"
)

// Options controls recognition.
type Options struct {
	// Language is a Tesseract language code. Default "eng".
	Language string `json:"language"`
	// Level is word or line. Default line, which keeps labels such as
	// "Floor Plan A-1" together.
	Level Level `json:"level"`
	// MinConfidence in [0,1]; lower-confidence boxes are dropped.
	MinConfidence float64 `json:"min_confidence"`
	// UnitsPerPixel scales pixel positions into drawing units. Default 1.
	UnitsPerPixel float64 `json:"units_per_pixel"`
}

func (o *Options) applyDefaults() {
	if o.Language == "" {
		o.Language = "eng"
	}
	if o.Level == "" {
		o.Level = LevelLine
	}
	if o.UnitsPerPixel <= 0 {
		o.UnitsPerPixel = 1
	}
}

// languages splits "eng+kor" into its codes.
func (o Options) languages() []string {
	return strings.Split(o.Language, "+")
}

// Word is one recognized box.
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"` // 0.0 to 1.0
	Box        image.Rectangle `json:"box"`
}

// ExtractTextElements recognizes the text in the image at path and returns it
// as Text elements in drawing coordinates.
func ExtractTextElements(path string, opts Options) ([]drawing.Text, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	opts.applyDefaults()

	words, imageHeight, err := recognize(path, opts)
	if err != nil {
		return nil, err
	}
	return ToTextElements(words, imageHeight, opts), nil
}

// ToTextElements converts recognized boxes from an image imageHeight pixels
// tall into Text elements. Blank and low-confidence boxes are dropped.
func ToTextElements(words []Word, imageHeight int, opts Options) []drawing.Text {
	opts.applyDefaults()
	u := opts.UnitsPerPixel

	out := make([]drawing.Text, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence < opts.MinConfidence {
			continue
		}
		out = append(out, drawing.Text{
			Content: text,
			Position: drawing.Point{
				X: float64(w.Box.Min.X) * u,
				Y: float64(imageHeight-w.Box.Max.Y) * u,
			},
			Layer: Layer,
		})
	}
	return out
}
