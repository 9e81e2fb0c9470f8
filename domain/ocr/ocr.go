// Package ocr converts captured stat box images into raw text.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Extractor turns an image into raw text. Output may be empty or garbled;
// that is a valid result, not an error.
type Extractor interface {
	Extract(img image.Image) (string, error)
}

// TesseractExtractor runs images through a tesseract client configured for a
// single uniform text block, matching the game's stat dialog layout.
type TesseractExtractor struct {
	client *gosseract.Client
}

// NewTesseractExtractor constructs the client. Callers own Close.
func NewTesseractExtractor() (*TesseractExtractor, error) {
	client := gosseract.NewClient()
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr: page seg mode: %w", err)
	}
	return &TesseractExtractor{client: client}, nil
}

// Extract preprocesses img and returns the recognized text.
func (e *TesseractExtractor) Extract(img image.Image) (string, error) {
	prepped := Preprocess(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, prepped); err != nil {
		return "", fmt.Errorf("ocr: encode: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return text, nil
}

// Close releases the tesseract client.
func (e *TesseractExtractor) Close() error { return e.client.Close() }

var _ Extractor = (*TesseractExtractor)(nil)
