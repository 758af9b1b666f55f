package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

func writeStageError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	resp := models.ErrorResponse{Error: message}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = string(stageErr.Stage)
	}
	writeJSON(w, status, resp)
}

// classify maps extraction and pipeline errors to an HTTP status and a
// message safe to show the user.
func classify(err error) (int, string) {
	var (
		unsupported *extract.UnsupportedTypeError
		parseErr    *extract.ParseError
		ocrErr      *extract.OcrError
	)
	switch {
	case errors.As(err, &unsupported):
		return http.StatusBadRequest, "Unsupported file type"
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "Failed to extract text from file: the document could not be parsed"
	case errors.As(err, &ocrErr):
		return http.StatusUnprocessableEntity, "Failed to extract text from file: text recognition failed"
	default:
		return http.StatusInternalServerError, "Failed to process document"
	}
}

// decodeJSON reads a request body of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) (int, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return http.StatusRequestEntityTooLarge, "Request body too large", false
		}
		slog.Warn("Could not decode request body", "error", err)
		return http.StatusBadRequest, "Bad Request: could not parse JSON", false
	}
	return 0, "", true
}
