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

	// "HandleUpload" is the entry point name configured in GCP.
	functions.HTTP("HandleUpload", handleUpload)
}

// main is required by the Go Functions Framework.
func main() {}

// handleUpload serves POST /upload.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		application, initErr = app.FromEnv(context.Background(), nil)
		if initErr == nil {
			handler = application.Server.Wrap(application.Server.Upload)
		}
	})
	if initErr != nil {
		slog.Error("Critical: Upload initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}
