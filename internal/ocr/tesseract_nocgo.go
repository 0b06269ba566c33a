//go:build !cgo

package ocr

// Available reports whether this build can run Tesseract.
func Available() bool { return false }

// Version returns the linked Tesseract version.
func Version() string { return "" }

func recognize(string, Options) ([]Word, int, error) {
	return nil, 0, ErrUnavailable
}
