package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lllllllleong/legalease/internal/gcp"
	"github.com/Lllllllleong/legalease/internal/models"
)

const (
	translateTemperature     = 0.2
	translateTopP            = 1
	translateMaxOutputTokens = 4000

	// DisclaimerMarker labels every translation that did not come from the model.
	DisclaimerMarker = "SAMPLE - NOT A REAL TRANSLATION"
)

var errEmptyTranslation = errors.New("model returned no text")

// Translator renders simplified markdown in a target language.
type Translator struct {
	backend gcp.Backend
	catalog *Catalog
}

// NewTranslator creates a Translator. A nil catalog selects the embedded one.
func NewTranslator(backend gcp.Backend, catalog *Catalog) *Translator {
	if backend == nil {
		backend = gcp.Unconfigured{}
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Translator{backend: backend, catalog: catalog}
}

// Translate never fails. English is returned unchanged without a model call;
// any other language without a usable backend gets a labelled sample.
func (t *Translator) Translate(ctx context.Context, docID, text, code string) models.TranslationResult {
	code = NormalizeCode(code)
	if code == "" {
		code = SourceLanguage
	}
	result := models.TranslationResult{SourceText: text, Language: code}

	logCtx := slog.With("documentId", docID, "language", code)

	if code == SourceLanguage {
		logCtx.Debug("Target language is the source language; skipping translation.")
		result.Markdown = text
		result.Mode = models.ModePassthrough
		return result
	}

	name := t.catalog.Name(code)
	logCtx.Info("Starting translation.", "languageName", name, "textLength", len(text), "backendConfigured", t.backend.Configured())

	if !t.backend.Configured() {
		logCtx.Warn("Hosted model not configured; returning sample translation.", "degradedReason", models.DegradedUnconfigured)
		result.Markdown = withDisclaimer(t.catalog.Sample(code))
		result.Mode = models.ModeFallback
		result.DegradedReason = models.DegradedUnconfigured
		return result
	}

	translated, err := t.backend.Generate(ctx, gcp.Request{
		SystemInstruction: gcp.TranslatorSystemPrompt(name, t.catalog.IsRTL(code)),
		Prompt:            gcp.TranslatorUserPrompt(name, text),
		Temperature:       translateTemperature,
		TopP:              translateTopP,
		MaxOutputTokens:   translateMaxOutputTokens,
	})
	if err == nil && strings.TrimSpace(translated) == "" {
		err = errEmptyTranslation
	}
	if err != nil {
		reason := models.DegradedBackendError
		if errors.Is(err, gcp.ErrBackendUnavailable) {
			reason = models.DegradedUnconfigured
		}
		logCtx.Warn("Translation call failed; returning original content.", "error", err, "degradedReason", reason)
		result.Markdown = errorTranslation(name, text, err)
		result.Mode = models.ModeFallback
		result.DegradedReason = reason
		return result
	}

	result.Markdown = translated
	result.Mode = models.ModeModel
	result.Structure = CompareStructure(text, translated)
	if !result.Structure.Preserved {
		logCtx.Warn("Translated markdown structure differs from the source.",
			"sourceHeadings", result.Structure.SourceHeadings,
			"outputHeadings", result.Structure.OutputHeadings,
			"sourceListItems", result.Structure.SourceListItems,
			"outputListItems", result.Structure.OutputListItems,
		)
	}

	logCtx.Info("Translation complete.", "markdownLength", len(translated))
	return result
}

func withDisclaimer(markdown string) string {
	return markdown + "\n\n---\n\n> ⚠️ " + DisclaimerMarker
}

func errorTranslation(languageName, text string, err error) string {
	return withDisclaimer(fmt.Sprintf(`# 📋 Document Analysis - Translation Error

**Translation Service Error**: Unable to translate to %s

**Original Content (English):**

%s

**Error Details:** %s

**Note:** Please check the translation service configuration or try again later.`, languageName, text, err.Error()))
}
