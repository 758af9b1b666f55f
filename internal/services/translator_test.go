package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/gcp"
	"github.com/Lllllllleong/legalease/internal/models"
)

const simplifiedDoc = "# 📋 Document Analysis\n\n## 👥 Key Parties\n- Landlord\n- Tenant\n\n## 🎯 Next Steps\n1. Pay rent"

func TestTranslateEnglishIsIdentity(t *testing.T) {
	for _, code := range []string{"en", "EN", " en ", ""} {
		backend := &fakeBackend{configured: true, reply: "should not be used"}

		res := NewTranslator(backend, nil).Translate(context.Background(), "doc-1", simplifiedDoc, code)

		assert.Equal(t, simplifiedDoc, res.Markdown)
		assert.Equal(t, models.ModePassthrough, res.Mode)
		assert.Empty(t, backend.requests, "no model call for %q", code)
	}
}

func TestTranslateUnconfiguredFrench(t *testing.T) {
	res := NewTranslator(gcp.Unconfigured{}, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "fr")

	assert.Equal(t, models.ModeFallback, res.Mode)
	assert.Equal(t, models.DegradedUnconfigured, res.DegradedReason)
	assert.Contains(t, res.Markdown, "Analyse de Document")
	assert.Contains(t, res.Markdown, DisclaimerMarker)
	assert.Equal(t, "fr", res.Language)
	assert.Nil(t, res.Structure)
}

func TestTranslateUnconfiguredAlwaysDisclaims(t *testing.T) {
	tr := NewTranslator(gcp.Unconfigured{}, nil)
	codes := []string{"ga", "xx", "not a code"}
	for _, lang := range DefaultCatalog().Languages() {
		codes = append(codes, lang.Code)
	}

	for _, code := range codes {
		res := tr.Translate(context.Background(), "doc-1", simplifiedDoc, code)
		if code == SourceLanguage {
			assert.NotContains(t, res.Markdown, DisclaimerMarker)
			continue
		}
		assert.Contains(t, res.Markdown, DisclaimerMarker, code)
		assert.Equal(t, models.ModeFallback, res.Mode, code)
	}
}

func TestTranslateUnconfiguredGenericSample(t *testing.T) {
	res := NewTranslator(gcp.Unconfigured{}, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "sr")
	assert.Contains(t, res.Markdown, "[Serbian - Српски translation sample]")
}

func TestTranslateBackendError(t *testing.T) {
	backend := &fakeBackend{configured: true, err: errors.New("deadline exceeded")}

	res := NewTranslator(backend, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "de")

	assert.Equal(t, models.ModeFallback, res.Mode)
	assert.Equal(t, models.DegradedBackendError, res.DegradedReason)
	assert.Contains(t, res.Markdown, "Unable to translate to German - Deutsch")
	assert.Contains(t, res.Markdown, simplifiedDoc)
	assert.Contains(t, res.Markdown, "deadline exceeded")
	assert.Contains(t, res.Markdown, DisclaimerMarker)
}

func TestTranslateEmptyReplyIsError(t *testing.T) {
	backend := &fakeBackend{configured: true, reply: ""}

	res := NewTranslator(backend, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "it")

	assert.Equal(t, models.ModeFallback, res.Mode)
	assert.Contains(t, res.Markdown, DisclaimerMarker)
}

func TestTranslateWithModel(t *testing.T) {
	reply := "# 📋 Analyse de Document\n\n## 👥 Parties\n- Bailleur\n- Locataire\n\n## 🎯 Étapes\n1. Payer le loyer"
	backend := &fakeBackend{configured: true, reply: reply}

	res := NewTranslator(backend, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "FR")

	assert.Equal(t, models.ModeModel, res.Mode)
	assert.Equal(t, reply, res.Markdown)
	assert.NotContains(t, res.Markdown, DisclaimerMarker)
	require.NotNil(t, res.Structure)
	assert.True(t, res.Structure.Preserved)

	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.Contains(t, req.SystemInstruction, "from English to French - Français")
	assert.NotContains(t, req.SystemInstruction, "is written right-to-left")
	assert.Equal(t, gcp.TranslatorUserPrompt("French - Français", simplifiedDoc), req.Prompt)
	assert.InDelta(t, 0.2, req.Temperature, 1e-6)
	assert.Equal(t, int32(4000), req.MaxOutputTokens)
}

func TestTranslateReportsStructureMismatch(t *testing.T) {
	backend := &fakeBackend{configured: true, reply: "Analyse: le locataire paie le loyer."}

	res := NewTranslator(backend, nil).Translate(context.Background(), "doc-1", simplifiedDoc, "fr")

	assert.Equal(t, models.ModeModel, res.Mode)
	assert.Equal(t, backend.reply, res.Markdown)
	require.NotNil(t, res.Structure)
	assert.False(t, res.Structure.Preserved)
	assert.Equal(t, 3, res.Structure.SourceHeadings)
	assert.Equal(t, 0, res.Structure.OutputHeadings)
}

func TestTranslateRightToLeftPrompt(t *testing.T) {
	backend := &fakeBackend{configured: true, reply: "# تحليل"}

	NewTranslator(backend, nil).Translate(context.Background(), "doc-1", "# Analysis", "ar")

	require.Len(t, backend.requests, 1)
	assert.Contains(t, backend.requests[0].SystemInstruction, "Arabic - العربية is written right-to-left")
}
