//go:build !noocr

package main

import (
	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/ocr"
)

func newRecognizer() extract.Recognizer {
	return ocr.NewTesseract()
}
