package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/config"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
)

func unconfigured(t *testing.T) *config.Config {
	t.Helper()
	for _, key := range []string{"PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "EVENT_SINK_URL"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewUnconfigured(t *testing.T) {
	var stages []pipeline.Stage
	progress := pipeline.ObserverFunc(func(_ context.Context, e pipeline.Event) {
		if !e.Degraded {
			stages = append(stages, e.Stage)
		}
	})

	a, err := New(context.Background(), unconfigured(t), nil, progress)
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Backend.Configured())

	bundle, err := a.Pipeline.Run(context.Background(), pipeline.Input{
		Filename: "nda.txt",
		MIMEType: "text/plain",
		Data:     []byte("The Recipient shall keep all information confidential."),
		Language: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ModeFallback, bundle.SimplifyMode)
	assert.Equal(t, []pipeline.Stage{
		pipeline.StageUploading, pipeline.StageExtracting, pipeline.StageSimplifying,
		pipeline.StageTranslating, pipeline.StageDone,
	}, stages)

	rec := httptest.NewRecorder()
	a.Server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewWithEventSink(t *testing.T) {
	received := make(chan string, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get("Ce-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := unconfigured(t)
	cfg.EventSinkURL = srv.URL

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Pipeline.Run(context.Background(), pipeline.Input{
		Filename: "a.txt", MIMEType: "text/plain", Data: []byte("Clause one applies."),
	})
	require.NoError(t, err)

	// uploading, extracting, simplifying, degraded simplifying, done
	assert.Len(t, received, 5)
}

func TestFromEnvAppliesLogLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	unconfigured(t)
	t.Setenv("LOG_LEVEL", "warn")

	a, err := FromEnv(context.Background(), nil)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))
}
