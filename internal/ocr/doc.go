// Package ocr reads text labels off scanned drawings with Tesseract
// (via gosseract/v2) and turns them into drawing Text elements.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-kor
//   - macOS: brew install tesseract tesseract-lang
//
// Builds without cgo compile, but every recognition call returns
// ErrUnavailable. Available reports which build is running.
//
// # Languages
//
// Language is a Tesseract code, or several joined with "+":
//   - "eng" - English (default)
//   - "kor" - Korean
//   - "eng+kor" - both
//
// # Coordinates
//
// Tesseract reports y-down pixel boxes. Text elements are anchored at the
// bottom-left corner of their box, converted to y-up drawing coordinates
// with the same UnitsPerPixel convention as package raster, so labels line up
// with lines extracted from the same image.
package ocr
