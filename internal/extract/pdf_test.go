package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/testutil"
)

func TestPDFExtractorReassemblesBlocks(t *testing.T) {
	data := testutil.BuildPDF(t,
		testutil.TextPage("RESIDENTIAL LEASE AGREEMENT", "This lease is made between the Landlord and the Tenant."),
		testutil.TextPage("The monthly rent is due on the first day of each month."),
	)

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)

	want := strings.Join([]string{
		"RESIDENTIAL LEASE AGREEMENT",
		"This lease is made between the Landlord and the Tenant.",
		"The monthly rent is due on the first day of each month.",
	}, "\n")
	assert.Equal(t, want, res.Text)
	assert.Empty(t, res.Warnings)
}

func TestPDFExtractorJoinsRunsWithinBlock(t *testing.T) {
	page := "BT /F1 12 Tf 72 720 Td (Termination) Tj 0 -14 Td (clause applies) Tj ET\n" +
		"BT /F1 12 Tf 72 600 Td [(Sec) -20 (tion) -400 (Four)] TJ ET\n"
	data := testutil.BuildPDF(t, page)

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Termination clause applies\nSection Four", res.Text)
}

func TestPDFExtractorPercentDecodesRuns(t *testing.T) {
	data := testutil.BuildPDF(t, testutil.TextPage("Caf%C3%A9 des Arts agreement signed"))

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Café des Arts agreement signed", res.Text)
}

func TestPDFExtractorDecodesCompositeFontText(t *testing.T) {
	data := testutil.BuildCIDFontPDF(t,
		testutil.GlyphPage("This lease agreement binds the Tenant."),
		testutil.GlyphPage("Deposit is refundable within 30 days."),
	)

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "This lease agreement binds the Tenant.\nDeposit is refundable within 30 days.", res.Text)
	assert.Empty(t, res.Warnings)
}

func TestPDFExtractorIsIdempotent(t *testing.T) {
	data := testutil.BuildPDF(t,
		testutil.TextPage("Party A agrees to indemnify Party B."),
		testutil.TextPage("Governing law: State of New York."),
	)
	ex := NewPDFExtractor()

	first, err := ex.Extract(context.Background(), data)
	require.NoError(t, err)
	second, err := ex.Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

func TestPDFExtractorScannedAdvisory(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
	}{
		{"three characters", []string{testutil.TextPage("abc")}},
		{"nine characters", []string{testutil.TextPage("123456789")}},
		{"no text at all", []string{"q 612 0 0 792 0 0 cm Q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewPDFExtractor().Extract(context.Background(), testutil.BuildPDF(t, tt.pages...))
			require.NoError(t, err)
			assert.Equal(t, ScannedPDFAdvisory, res.Text)
			assert.Contains(t, res.Warnings, WarningScannedPDF)
		})
	}
}

func TestPDFExtractorTenCharactersIsKept(t *testing.T) {
	res, err := NewPDFExtractor().Extract(context.Background(), testutil.BuildPDF(t, testutil.TextPage("0123456789")))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", res.Text)
}

func TestPDFExtractorParseError(t *testing.T) {
	for name, data := range map[string][]byte{
		"plain text": []byte("this is not a pdf at all"),
		"empty":      nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewPDFExtractor().Extract(context.Background(), data)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, models.TypePDF, parseErr.Format)
		})
	}
}
