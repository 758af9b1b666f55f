// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Lllllllleong/legalease/internal/gcp"
)

const (
	DefaultRegion         = "us-central1"
	DefaultModel          = "gemini-1.5-pro"
	DefaultPort           = "5000"
	DefaultMaxUploadBytes = 10 << 20
	DefaultRequestTimeout = 2 * time.Minute
)

var defaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config holds every setting shared by the HTTP server, the CLI and the
// Cloud Functions.
type Config struct {
	ProjectID       string
	VertexAIRegion  string
	VertexModel     string
	CredentialsFile string

	Port           string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	CORSOrigins    []string

	EventSinkURL string
	LogLevel     slog.Level
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("VERTEX_AI_REGION", DefaultRegion)
	v.SetDefault("VERTEX_MODEL", DefaultModel)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout)
	v.SetDefault("LOG_LEVEL", "info")

	// Cloud Functions expose the project as GOOGLE_CLOUD_PROJECT.
	_ = v.BindEnv("PROJECT_ID", "PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	return v
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		ProjectID:       strings.TrimSpace(v.GetString("PROJECT_ID")),
		VertexAIRegion:  v.GetString("VERTEX_AI_REGION"),
		VertexModel:     v.GetString("VERTEX_MODEL"),
		CredentialsFile: v.GetString("VERTEX_CREDENTIALS_FILE"),
		Port:            v.GetString("PORT"),
		MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
		RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		EventSinkURL:    v.GetString("EVENT_SINK_URL"),
		LogLevel:        ParseLevel(v.GetString("LOG_LEVEL")),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = defaultCORSOrigins
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.VertexAIRegion == "" {
		return nil, fmt.Errorf("VERTEX_AI_REGION must not be empty")
	}
	return cfg, nil
}

// BackendConfigured reports whether a real Vertex AI project is set.
func (c *Config) BackendConfigured() bool {
	return c.ProjectID != "" && c.ProjectID != gcp.PlaceholderProjectID
}

// Backend returns the settings used to build the hosted-model client.
func (c *Config) Backend() gcp.BackendConfig {
	return gcp.BackendConfig{
		ProjectID:       c.ProjectID,
		Region:          c.VertexAIRegion,
		Model:           c.VertexModel,
		CredentialsFile: c.CredentialsFile,
	}
}

// LogLevelFromEnv reads LOG_LEVEL alone, for entry points that need no other
// configuration.
func LogLevelFromEnv() slog.Level {
	return ParseLevel(newViper().GetString("LOG_LEVEL"))
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
