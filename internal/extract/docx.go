package extract

import (
	"bytes"
	"context"
	"strings"

	"code.sajari.com/docconv/v2"

	"github.com/Lllllllleong/legalease/internal/models"
)

// DOCXExtractor returns the raw paragraph text of a Word document. Styling,
// tables and structure are discarded.
type DOCXExtractor struct{}

func (DOCXExtractor) Extract(_ context.Context, data []byte) (*models.ExtractionResult, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: models.TypeDOCX, Err: err}
	}
	return &models.ExtractionResult{Text: strings.TrimSpace(text)}, nil
}
