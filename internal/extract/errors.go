package extract

import (
	"fmt"

	"github.com/Lllllllleong/legalease/internal/models"
)

// UnsupportedTypeError is returned when neither the declared MIME type nor
// the filename extension maps to an extractor.
type UnsupportedTypeError struct {
	MIMEType string
	Filename string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: mime %q, filename %q", e.MIMEType, e.Filename)
}

// ParseError is returned when a PDF or DOCX cannot be parsed structurally.
type ParseError struct {
	Format models.DocumentType
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OcrError is returned when an image cannot be decoded or recognized.
type OcrError struct {
	Err error
}

func (e *OcrError) Error() string {
	return fmt.Sprintf("failed to recognize image text: %v", e.Err)
}

func (e *OcrError) Unwrap() error { return e.Err }
