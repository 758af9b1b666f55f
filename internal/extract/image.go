package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/Lllllllleong/legalease/internal/models"
)

// WarningEnglishOCR is attached to every OCR result: the engine only knows
// English, so other scripts come back poorly.
const WarningEnglishOCR = "OCR configured for English only"

var errNoRecognizer = errors.New("no OCR engine configured")

// Recognizer runs optical character recognition over an encoded image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ImageExtractor recovers text from JPEG and PNG scans.
type ImageExtractor struct {
	recognizer Recognizer
}

func NewImageExtractor(recognizer Recognizer) *ImageExtractor {
	return &ImageExtractor{recognizer: recognizer}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	if e.recognizer == nil {
		return nil, &OcrError{Err: errNoRecognizer}
	}
	text, err := e.recognizer.Recognize(ctx, data)
	if err != nil {
		return nil, &OcrError{Err: err}
	}
	return &models.ExtractionResult{
		Text:     strings.TrimSpace(text),
		Warnings: []string{WarningEnglishOCR},
	}, nil
}
