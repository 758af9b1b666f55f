package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
	"github.com/Lllllllleong/legalease/internal/services"
)

func TestDetectMIMEType(t *testing.T) {
	assert.Equal(t, "application/pdf", detectMIMEType("lease.pdf", nil))
	assert.Equal(t, "image/png", detectMIMEType("scan.png", nil))
	assert.Contains(t, detectMIMEType("notes.txt", []byte("hello")), "text/plain")
	assert.Equal(t, "application/pdf", detectMIMEType("noext", []byte("%PDF-1.7\n")))
}

func TestPipelineInput(t *testing.T) {
	in := pipelineInput("/tmp/docs/lease.txt", "text/plain", []byte("x"), "fr")
	assert.Equal(t, "lease.txt", in.Filename)
	assert.Equal(t, "fr", in.Language)
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Translating...", stageLabel(pipeline.StageTranslating))
	assert.Equal(t, "custom...", stageLabel(pipeline.Stage("custom")))
}

func TestProgressDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, false)
	p.Start()
	p.StageChanged(context.Background(), pipeline.Event{Stage: pipeline.StageSimplifying, Degraded: true})
	p.Stop()
	assert.Empty(t, buf.String())
}

func TestPrintBundle(t *testing.T) {
	translated := "# Analyse"
	var buf bytes.Buffer
	printBundle(&buf, &models.PipelineBundle{
		DocumentID:    "doc-1",
		Filename:      "lease.txt",
		OriginalText:  "Original clause.",
		Simplified:    "# Summary",
		Translated:    &translated,
		Language:      "fr",
		SimplifyMode:  models.ModeFallback,
		TranslateMode: models.ModeFallback,
		Warnings:      []string{"likely scanned/image-only PDF"},
	})

	out := buf.String()
	assert.Contains(t, out, "lease.txt")
	assert.Contains(t, out, "Original clause.")
	assert.Contains(t, out, "== Simplified (fallback) ==")
	assert.Contains(t, out, "== Translated: fr (fallback) ==")
	assert.Contains(t, out, "likely scanned/image-only PDF")
}

func TestProcessCommandJSON(t *testing.T) {
	for _, key := range []string{"PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "EVENT_SINK_URL"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tenant pays rent monthly. Landlord fixes the roof."), 0o600))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"process", path, "--lang", "fr", "--json", "--no-color", "--env-file", filepath.Join(t.TempDir(), "missing.env")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var bundle models.PipelineBundle
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &bundle), stdout.String())
	assert.Equal(t, "lease.txt", bundle.Filename)
	require.NotNil(t, bundle.Translated)
	assert.Contains(t, *bundle.Translated, services.DisclaimerMarker)
}

func TestLanguagesCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"languages", "--no-color", "--env-file", filepath.Join(t.TempDir(), "missing.env")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "French - Français")
	assert.Contains(t, stdout.String(), "right-to-left")
}
