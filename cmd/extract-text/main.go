package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/legalease/internal/app"
	"github.com/Lllllllleong/legalease/internal/ocr"
)

var (
	application *app.App
	handler     http.Handler
	once        sync.Once
	initErr     error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// "HandleExtractText" is the entry point name configured in GCP.
	functions.HTTP("HandleExtractText", handleExtractText)
}

// main is required by the Go Functions Framework.
func main() {}

// handleExtractText serves POST /extract-text.
func handleExtractText(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		application, initErr = app.FromEnv(context.Background(), ocr.NewTesseract())
		if initErr == nil {
			handler = application.Server.Wrap(application.Server.ExtractText)
		}
	})
	if initErr != nil {
		slog.Error("Critical: Text extraction initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}
