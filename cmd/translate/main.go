package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/legalease/internal/app"
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

	// "HandleTranslate" is the entry point name configured in GCP.
	functions.HTTP("HandleTranslate", handleTranslate)
}

// main is required by the Go Functions Framework.
func main() {}

// handleTranslate serves POST /translate.
func handleTranslate(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		application, initErr = app.FromEnv(context.Background(), nil)
		if initErr == nil {
			handler = application.Server.Wrap(application.Server.Translate)
		}
	})
	if initErr != nil {
		slog.Error("Critical: Translator initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}
