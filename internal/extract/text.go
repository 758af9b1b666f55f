package extract

import (
	"context"
	"strings"

	"github.com/Lllllllleong/legalease/internal/models"
)

// TextExtractor passes plain-text uploads through unchanged, replacing any
// invalid UTF-8 sequences.
type TextExtractor struct{}

func (TextExtractor) Extract(_ context.Context, data []byte) (*models.ExtractionResult, error) {
	return &models.ExtractionResult{Text: strings.ToValidUTF8(string(data), "�")}, nil
}
