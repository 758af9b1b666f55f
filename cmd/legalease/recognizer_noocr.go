//go:build noocr

package main

import (
	"log/slog"

	"github.com/Lllllllleong/legalease/internal/extract"
)

// newRecognizer returns nil in builds without Tesseract; image uploads then
// fail with an OCR error.
func newRecognizer() extract.Recognizer {
	slog.Warn("Built without OCR support; image documents cannot be processed.")
	return nil
}
