package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	text string
	err  error
	got  []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, image []byte) (string, error) {
	f.got = image
	return f.text, f.err
}

func TestImageExtractor(t *testing.T) {
	rec := &fakeRecognizer{text: "\n  EMPLOYMENT CONTRACT\nSalary: $50,000  \n\n"}
	img := []byte{0x89, 'P', 'N', 'G'}

	res, err := NewImageExtractor(rec).Extract(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "EMPLOYMENT CONTRACT\nSalary: $50,000", res.Text)
	assert.Equal(t, []string{WarningEnglishOCR}, res.Warnings)
	assert.Equal(t, img, rec.got)
}

func TestImageExtractorOcrError(t *testing.T) {
	boom := errors.New("leptonica: cannot decode image")
	tests := []struct {
		name  string
		rec   Recognizer
		cause error
	}{
		{"recognizer failure", &fakeRecognizer{err: boom}, boom},
		{"no recognizer", nil, errNoRecognizer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageExtractor(tt.rec).Extract(context.Background(), []byte("img"))

			var ocrErr *OcrError
			require.ErrorAs(t, err, &ocrErr)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}
