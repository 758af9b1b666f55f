package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/legalease/internal/app"
	"github.com/Lllllllleong/legalease/internal/config"
	"github.com/Lllllllleong/legalease/internal/events"
	"github.com/Lllllllleong/legalease/internal/pipeline"
)

var monitor = events.LogObserver{}

func init() {
	// --- Set up structured logging ---
	app.SetupLogging(os.Stdout, config.LogLevelFromEnv())

	// Receives the events posted by EVENT_SINK_URL. Degraded stages are logged
	// at WARN for log-based alerting on hosted-model outages.
	functions.CloudEvent("RecordStageEvent", recordStageEvent)
}

// main is required by the Go Functions Framework.
func main() {}

func recordStageEvent(ctx context.Context, e cloudevents.Event) error {
	stageEvent, err := events.FromCloudEvent(e)
	if err != nil {
		// A malformed payload will never decode; acknowledge it instead of
		// having the platform redeliver it.
		slog.Error("Failed to unmarshal stage event", "error", err, "eventId", e.ID(), "data", string(e.Data()))
		return nil
	}
	if stageEvent.Stage == "" {
		slog.Warn("Stage event without a stage", "eventId", e.ID(), "type", e.Type())
		stageEvent.Stage = pipeline.Stage(e.Type())
	}

	monitor.StageChanged(ctx, stageEvent)
	return nil
}
