package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadImage opens a PNG, JPEG, GIF, BMP or TIFF file, applying any EXIF
// orientation so scans come out upright.
func LoadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image path")
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}
