// Package api exposes the document pipeline over HTTP.
package api

import (
	"encoding/base64"
	"time"

	"github.com/Lllllllleong/legalease/internal/config"
	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/pipeline"
	"github.com/Lllllllleong/legalease/internal/services"
)

const Version = "1.0.0"

// allowedUploadTypes are the declared MIME types /upload accepts.
var allowedUploadTypes = map[string]bool{
	extract.MIMEPDF:  true,
	extract.MIMEDOCX: true,
	"image/jpeg":     true,
	"image/png":      true,
	"image/jpg":      true,
}

// Options are the boundary limits applied to every request.
type Options struct {
	MaxUploadBytes int64
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// OptionsFromConfig copies the transport settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	}
}

// Server holds the handlers for every endpoint.
type Server struct {
	extractor  pipeline.DocumentExtractor
	simplifier pipeline.DocumentSimplifier
	translator pipeline.DocumentTranslator
	catalog    *services.Catalog
	pipeline   *pipeline.Pipeline
	opts       Options
}

// NewServer wires the handlers. observer receives stage events from /process.
func NewServer(
	extractor pipeline.DocumentExtractor,
	simplifier pipeline.DocumentSimplifier,
	translator pipeline.DocumentTranslator,
	catalog *services.Catalog,
	observer pipeline.Observer,
	opts Options,
) *Server {
	if catalog == nil {
		catalog = services.DefaultCatalog()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = config.DefaultMaxUploadBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = config.DefaultRequestTimeout
	}
	return &Server{
		extractor:  extractor,
		simplifier: simplifier,
		translator: translator,
		catalog:    catalog,
		pipeline:   pipeline.New(extractor, simplifier, translator, observer),
		opts:       opts,
	}
}

// jsonBodyLimit leaves room for a base64-encoded maximum-size upload.
func (s *Server) jsonBodyLimit() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(s.opts.MaxUploadBytes))) + 1<<16
}

// multipartLimit allows for the form boundaries and headers around the file.
func (s *Server) multipartLimit() int64 {
	return s.opts.MaxUploadBytes + 1<<16
}
