package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
	"github.com/Lllllllleong/legalease/internal/services"
)

const multipartMemory = 32 << 20

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "LegalEase API Server",
		"version": Version,
		"status":  "running",
		"endpoints": map[string]string{
			"health":       "/health",
			"languages":    "/languages",
			"upload":       "POST /upload",
			"extractText":  "POST /extract-text",
			"simplifyText": "POST /simplify-text",
			"translate":    "POST /translate",
			"process":      "POST /process",
		},
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "LegalEase API is running"})
}

// Languages handles GET /languages.
func (s *Server) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"source":    services.SourceLanguage,
		"groups":    s.catalog.Groups(),
		"languages": s.catalog.Languages(),
	})
}

type uploadedFile struct {
	filename string
	mimeType string
	data     []byte
}

func (s *Server) tooLargeMessage() string {
	if s.opts.MaxUploadBytes%(1<<20) == 0 {
		return fmt.Sprintf("File too large. Maximum size is %dMB.", s.opts.MaxUploadBytes>>20)
	}
	return fmt.Sprintf("File too large. Maximum size is %d bytes.", s.opts.MaxUploadBytes)
}

// readUpload pulls the "file" part out of a multipart request and applies the
// size and declared-type limits.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, allowText bool) (*uploadedFile, int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, s.multipartLimit())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusBadRequest, s.tooLargeMessage()
		}
		return nil, http.StatusBadRequest, "No file uploaded"
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, "No file uploaded"
	}
	defer file.Close()

	if header.Size > s.opts.MaxUploadBytes {
		return nil, http.StatusBadRequest, s.tooLargeMessage()
	}

	declared := header.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = declared
	}
	if !allowedUploadTypes[mediaType] && !(allowText && mediaType == extract.MIMEText) {
		return nil, http.StatusBadRequest, "Invalid file type. Only PDF, DOCX, and images are allowed."
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err, "filename", header.Filename)
		return nil, http.StatusInternalServerError, "Failed to upload file"
	}
	return &uploadedFile{filename: header.Filename, mimeType: mediaType, data: data}, 0, ""
}

// Upload handles POST /upload. The file is echoed back base64-encoded; nothing
// is stored.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	up, status, msg := s.readUpload(w, r, false)
	if up == nil {
		writeError(w, status, msg)
		return
	}

	doc, err := extract.NewDocument(up.filename, up.mimeType, up.data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	slog.Info("File uploaded.", "documentId", doc.ID, "filename", doc.Filename, "fileType", doc.Type, "bytes", len(doc.Data))
	writeJSON(w, http.StatusOK, models.UploadResponse{
		Success:  true,
		DocID:    doc.ID,
		Filename: doc.Filename,
		FileType: doc.Type,
		Buffer:   base64.StdEncoding.EncodeToString(doc.Data),
	})
}

// ExtractText handles POST /extract-text.
func (s *Server) ExtractText(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractTextRequest
	if status, msg, ok := decodeJSON(w, r, s.jsonBodyLimit(), &req); !ok {
		writeError(w, status, msg)
		return
	}
	if req.DocID == "" || req.Buffer == "" || req.FileType == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	switch req.FileType {
	case models.TypePDF, models.TypeDOCX, models.TypeImage, models.TypeText:
	default:
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Buffer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid buffer: expected base64-encoded file contents")
		return
	}

	result, err := s.extractor.Extract(r.Context(), &models.Document{
		ID:   req.DocID,
		Type: req.FileType,
		Data: data,
	})
	if err != nil {
		status, msg := classify(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, models.ExtractTextResponse{
		Success:  true,
		Text:     result.Text,
		Warnings: result.Warnings,
	})
}

// SimplifyText handles POST /simplify-text. It never fails once the request
// is valid; the mode field says whether the model produced the answer.
func (s *Server) SimplifyText(w http.ResponseWriter, r *http.Request) {
	var req models.SimplifyTextRequest
	if status, msg, ok := decodeJSON(w, r, s.jsonBodyLimit(), &req); !ok {
		writeError(w, status, msg)
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	result := s.simplifier.Simplify(r.Context(), req.DocID, req.Text)
	writeJSON(w, http.StatusOK, models.SimplifyTextResponse{
		Success:    true,
		Simplified: result.Markdown,
		Mode:       result.Mode,
	})
}

// Translate handles POST /translate.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if status, msg, ok := decodeJSON(w, r, s.jsonBodyLimit(), &req); !ok {
		writeError(w, status, msg)
		return
	}
	if req.Text == "" || req.TargetLang == "" {
		writeError(w, http.StatusBadRequest, "Missing text or target language")
		return
	}

	result := s.translator.Translate(r.Context(), req.DocID, req.Text, req.TargetLang)
	writeJSON(w, http.StatusOK, models.TranslateResponse{
		Success:    true,
		Translated: result.Markdown,
		Mode:       result.Mode,
		Structure:  result.Structure,
	})
}

// Process handles POST /process: the whole pipeline in one request. The
// target language comes from the "language" form field.
func (s *Server) Process(w http.ResponseWriter, r *http.Request) {
	up, status, msg := s.readUpload(w, r, true)
	if up == nil {
		writeJSON(w, status, models.ErrorResponse{Error: msg, Stage: string(pipeline.StageUploading)})
		return
	}

	bundle, err := s.pipeline.Run(r.Context(), pipeline.Input{
		Filename: up.filename,
		MIMEType: up.mimeType,
		Data:     up.data,
		Language: r.FormValue("language"),
	})
	if err != nil {
		writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}
