package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lllllllleong/legalease/internal/app"
	"github.com/Lllllllleong/legalease/internal/config"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
)

var (
	processLang     string
	processJSON     bool
	processMIMEType string
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract, simplify and translate a local document",
	Example: `  legalease process lease.pdf
  legalease process contract.docx --lang es
  legalease process scan.png --lang hi --json > result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processLang, "lang", "l", "en", "target language code (see `legalease languages`)")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print the result as JSON")
	processCmd.Flags().StringVar(&processMIMEType, "mime-type", "", "declared MIME type (default: from the file extension)")
}

// detectMIMEType guesses the declared type from the extension, then from the
// content.
func detectMIMEType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func pipelineInput(path, mimeType string, data []byte, lang string) pipeline.Input {
	return pipeline.Input{
		Filename: filepath.Base(path),
		MIMEType: mimeType,
		Data:     data,
		Language: lang,
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > cfg.MaxUploadBytes {
		return fmt.Errorf("%s is %d bytes; the maximum is %d", path, info.Size(), cfg.MaxUploadBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	mimeType := processMIMEType
	if mimeType == "" {
		mimeType = detectMIMEType(path, data)
	}

	progress := newProgress(cmd.ErrOrStderr(), !processJSON)
	a, err := app.New(cmd.Context(), cfg, newRecognizer(), progress)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	progress.Start()
	bundle, err := a.Pipeline.Run(ctx, pipelineInput(path, mimeType, data, processLang))
	progress.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if processJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}
	printBundle(out, bundle)
	return nil
}

func printBundle(w io.Writer, b *models.PipelineBundle) {
	heading := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	heading.Fprintf(w, "Document %s (%s)\n", b.Filename, b.DocumentID)
	for _, warning := range b.Warnings {
		warn.Fprintf(w, "! %s\n", warning)
	}

	heading.Fprintln(w, "\n== Original text ==")
	dim.Fprintln(w, b.OriginalText)

	heading.Fprintf(w, "\n== Simplified (%s) ==\n", b.SimplifyMode)
	fmt.Fprintln(w, b.Simplified)

	if b.Translated != nil {
		heading.Fprintf(w, "\n== Translated: %s (%s) ==\n", b.Language, b.TranslateMode)
		fmt.Fprintln(w, *b.Translated)
	}
}
