package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/models"
)

type countingExtractor struct {
	calls int
	text  string
}

func (c *countingExtractor) Extract(_ context.Context, _ []byte) (*models.ExtractionResult, error) {
	c.calls++
	return &models.ExtractionResult{Text: c.text}, nil
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		filename string
		want     models.DocumentType
	}{
		{"pdf mime", "application/pdf", "contract", models.TypePDF},
		{"docx mime", MIMEDOCX, "lease", models.TypeDOCX},
		{"jpeg mime", "image/jpeg", "scan", models.TypeImage},
		{"png mime", "image/png", "scan.bin", models.TypeImage},
		{"text mime with charset", "text/plain; charset=utf-8", "notes", models.TypeText},
		{"mime wins over extension", "application/pdf", "contract.docx", models.TypePDF},
		{"extension fallback pdf", "application/octet-stream", "contract.PDF", models.TypePDF},
		{"extension fallback docx", "", "lease.docx", models.TypeDOCX},
		{"extension fallback jpg", "", "scan.jpg", models.TypeImage},
		{"extension fallback txt", "", "notes.txt", models.TypeText},
		{"zip", "application/zip", "archive.zip", models.TypeUnknown},
		{"nothing", "", "", models.TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.mimeType, tt.filename))
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("lease.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, models.TypePDF, doc.Type)
	assert.Equal(t, "lease.pdf", doc.Filename)

	other, err := NewDocument("lease.pdf", "application/pdf", nil)
	require.NoError(t, err)
	assert.NotEqual(t, doc.ID, other.ID)

	_, err = NewDocument("archive.zip", "application/zip", []byte("PK"))
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "application/zip", unsupported.MIMEType)
}

func newCountingDispatcher() (*Dispatcher, map[models.DocumentType]*countingExtractor) {
	d := NewDispatcher(nil)
	fakes := map[models.DocumentType]*countingExtractor{}
	for _, dt := range []models.DocumentType{models.TypePDF, models.TypeDOCX, models.TypeImage, models.TypeText} {
		fakes[dt] = &countingExtractor{text: string(dt)}
		d.Register(dt, fakes[dt])
	}
	return d, fakes
}

func TestDispatcherSelectsExactlyOneExtractor(t *testing.T) {
	for _, dt := range []models.DocumentType{models.TypePDF, models.TypeDOCX, models.TypeImage, models.TypeText} {
		t.Run(string(dt), func(t *testing.T) {
			d, fakes := newCountingDispatcher()
			doc := &models.Document{ID: "doc-1", Type: dt, Data: []byte("x")}

			res, err := d.Extract(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, string(dt), res.Text)
			assert.Same(t, doc, res.Document)

			for other, fake := range fakes {
				if other == dt {
					assert.Equal(t, 1, fake.calls, "selected extractor")
				} else {
					assert.Zero(t, fake.calls, "extractor %s should not run", other)
				}
			}
		})
	}
}

func TestDispatcherRejectsUnknownBeforeExtracting(t *testing.T) {
	d, fakes := newCountingDispatcher()
	doc := &models.Document{ID: "doc-1", Filename: "archive.zip", MIMEType: "application/zip", Type: models.TypeUnknown}

	_, err := d.Extract(context.Background(), doc)

	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	for dt, fake := range fakes {
		assert.Zero(t, fake.calls, "extractor %s should not run", dt)
	}
}
