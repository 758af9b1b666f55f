// Package ocr adapts the Tesseract engine to extract.Recognizer.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// Language is the only language the engine is loaded with.
const Language = "eng"

// Tesseract recognizes text with a fresh gosseract client per call; clients
// are not safe for concurrent use.
type Tesseract struct{}

func NewTesseract() *Tesseract {
	slog.Info("OCR engine initialized.", "engine", "tesseract", "language", Language)
	return &Tesseract{}
}

func (t *Tesseract) Recognize(_ context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(Language); err != nil {
		return "", fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	return text, nil
}
