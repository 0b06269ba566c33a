//go:build cgo

package ocr

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether this build can run Tesseract.
func Available() bool { return true }

// Version returns the linked Tesseract version.
func Version() string { return gosseract.Version() }

func recognize(path string, opts Options) ([]Word, int, error) {
	height, err := imageHeight(path)
	if err != nil {
		return nil, 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(opts.languages()...); err != nil {
		return nil, 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, 0, fmt.Errorf("failed to set image: %w", err)
	}

	level := gosseract.RIL_TEXTLINE
	if opts.Level == LevelWord {
		level = gosseract.RIL_WORD
	}

	boxes, err := client.GetBoundingBoxes(level)
	if err != nil {
		return nil, 0, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
			Box:        b.Box,
		})
	}
	return words, height, nil
}

func imageHeight(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Height, nil
}
