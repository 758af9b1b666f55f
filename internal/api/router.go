package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router returns the combined HTTP handler for every endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(s.opts.CORSOrigins))
	r.Use(chimiddleware.Timeout(s.opts.RequestTimeout))

	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Get("/languages", s.Languages)

	r.Post("/upload", s.Upload)
	r.Post("/extract-text", s.ExtractText)
	r.Post("/simplify-text", s.SimplifyText)
	r.Post("/translate", s.Translate)
	r.Post("/process", s.Process)

	return r
}

// Wrap applies CORS and the request timeout to a single handler, for
// deployments that serve one endpoint per function.
func (s *Server) Wrap(h http.HandlerFunc) http.Handler {
	var handler http.Handler = h
	handler = chimiddleware.Timeout(s.opts.RequestTimeout)(handler)
	handler = CORS(s.opts.CORSOrigins)(handler)
	return handler
}

// CORS allows credentialed requests from the listed origins and answers
// preflight requests.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("Request handled.",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestId", chimiddleware.GetReqID(r.Context()),
		)
	})
}
