// Package extract turns uploaded document bytes into plain text.
package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Lllllllleong/legalease/internal/models"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// Extractor converts the raw bytes of one document format into text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error)
}

// DetectType maps a declared MIME type, then the filename extension, to a
// DocumentType. It returns TypeUnknown when neither is recognized.
func DetectType(mimeType, filename string) models.DocumentType {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case mt == MIMEPDF:
		return models.TypePDF
	case mt == MIMEDOCX:
		return models.TypeDOCX
	case strings.HasPrefix(mt, "image/"):
		return models.TypeImage
	case mt == MIMEText:
		return models.TypeText
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.TypePDF
	case ".docx":
		return models.TypeDOCX
	case ".jpg", ".jpeg", ".png":
		return models.TypeImage
	case ".txt":
		return models.TypeText
	}
	return models.TypeUnknown
}

// NewDocument builds a request-scoped Document with a fresh correlation ID.
// It fails with *UnsupportedTypeError when the type cannot be detected.
func NewDocument(filename, mimeType string, data []byte) (*models.Document, error) {
	docType := DetectType(mimeType, filename)
	if docType == models.TypeUnknown {
		return nil, &UnsupportedTypeError{MIMEType: mimeType, Filename: filename}
	}
	return &models.Document{
		ID:       uuid.NewString(),
		Filename: filename,
		MIMEType: mimeType,
		Type:     docType,
		Data:     data,
	}, nil
}

// Dispatcher routes a Document to the single extractor registered for its type.
type Dispatcher struct {
	extractors map[models.DocumentType]Extractor
}

// NewDispatcher registers the PDF, DOCX, image and text extractors. A nil
// recognizer leaves image extraction failing with *OcrError.
func NewDispatcher(recognizer Recognizer) *Dispatcher {
	return &Dispatcher{
		extractors: map[models.DocumentType]Extractor{
			models.TypePDF:   NewPDFExtractor(),
			models.TypeDOCX:  DOCXExtractor{},
			models.TypeImage: NewImageExtractor(recognizer),
			models.TypeText:  TextExtractor{},
		},
	}
}

// Register replaces the extractor used for docType.
func (d *Dispatcher) Register(docType models.DocumentType, ex Extractor) {
	d.extractors[docType] = ex
}

// Extract runs the extractor for doc.Type. Unknown types fail before any
// extractor is invoked.
func (d *Dispatcher) Extract(ctx context.Context, doc *models.Document) (*models.ExtractionResult, error) {
	ex, ok := d.extractors[doc.Type]
	if !ok {
		return nil, &UnsupportedTypeError{MIMEType: doc.MIMEType, Filename: doc.Filename}
	}

	logCtx := slog.With("documentId", doc.ID, "fileType", doc.Type)
	logCtx.Info("Starting text extraction.", "bytes", len(doc.Data))

	result, err := ex.Extract(ctx, doc.Data)
	if err != nil {
		logCtx.Error("Text extraction failed", "error", err)
		return nil, err
	}
	result.Document = doc

	logCtx.Info("Text extraction complete.", "textLength", len(result.Text), "warnings", len(result.Warnings))
	return result, nil
}
