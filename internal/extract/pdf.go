package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Lllllllleong/legalease/internal/models"
)

const (
	// ScannedPDFAdvisory replaces the text of PDFs that carry almost no text runs.
	ScannedPDFAdvisory = "This PDF appears to contain mostly images or scanned content. For better results, try converting it to text first or use an OCR tool."
	WarningScannedPDF  = "likely scanned/image-only PDF"

	minPDFTextLength = 10
)

// PDFExtractor reassembles the text runs of every page in document order.
type PDFExtractor struct{}

// NewPDFExtractor disables the pdfcpu config directory so extraction never
// touches the filesystem.
func NewPDFExtractor() *PDFExtractor {
	api.DisableConfigDir()
	return &PDFExtractor{}
}

func newPDFConfiguration() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

// Extract parses data as a PDF. Runs inside a text block are joined with a
// single space and blocks are separated by newlines.
func (e *PDFExtractor) Extract(_ context.Context, data []byte) (*models.ExtractionResult, error) {
	pdfCtx, err := api.ReadContext(bytes.NewReader(data), newPDFConfiguration())
	if err != nil {
		return nil, &ParseError{Format: models.TypePDF, Err: err}
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, &ParseError{Format: models.TypePDF, Err: fmt.Errorf("validation failed: %w", err)}
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, &ParseError{Format: models.TypePDF, Err: fmt.Errorf("failed to get page count: %w", err)}
	}

	reader, err := openTextReader(data)
	if err != nil {
		return nil, &ParseError{Format: models.TypePDF, Err: fmt.Errorf("failed to open page tree: %w", err)}
	}

	var blocks []string
	for pageNr := 1; pageNr <= reader.NumPage(); pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}
		pageText, err := pageBlocks(page)
		if err != nil {
			slog.Warn("Stopped reading a page content stream early.", "page", pageNr, "error", err)
		}
		blocks = append(blocks, pageText...)
	}

	text := strings.TrimSpace(strings.Join(blocks, "\n"))
	result := &models.ExtractionResult{Text: text}
	if utf8.RuneCountInString(text) < minPDFTextLength {
		slog.Warn("PDF text extraction produced very short text; likely an image-based PDF.",
			"textLength", utf8.RuneCountInString(text),
			"pageCount", pdfCtx.PageCount,
		)
		result.Text = ScannedPDFAdvisory
		result.Warnings = append(result.Warnings, WarningScannedPDF)
	}
	return result, nil
}

func openTextReader(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(textReaderInput(data)), int64(len(data)))
}

// textReaderInput presents PDF 2.0 files with a 1.7 header, which the text
// reader requires. The header length is unchanged so xref offsets still hold.
func textReaderInput(data []byte) []byte {
	if !bytes.HasPrefix(data, []byte("%PDF-2.")) {
		return data
	}
	patched := bytes.Clone(data)
	copy(patched, "%PDF-1.7")
	return patched
}
