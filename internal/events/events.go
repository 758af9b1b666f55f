// Package events publishes pipeline stage transitions.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	"github.com/Lllllllleong/legalease/internal/pipeline"
)

const (
	// StageEventType is the CloudEvents type of every stage transition.
	StageEventType = "app.legalease.pipeline.stage"
	// DegradedEventType marks a stage that returned fallback output.
	DegradedEventType = "app.legalease.pipeline.degraded"
	Source            = "legalease/pipeline"

	defaultSendTimeout = 5 * time.Second
)

// LogObserver writes stage transitions to slog. Degraded stages are logged at
// WARN so an outage of the hosted model shows up in log-based alerting.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) StageChanged(ctx context.Context, e pipeline.Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logCtx := logger.With("documentId", e.DocumentID, "stage", e.Stage)
	if e.Degraded {
		logCtx.WarnContext(ctx, "Stage degraded to fallback output.", "mode", e.Mode, "reason", e.Reason)
		return
	}
	logCtx.InfoContext(ctx, "Stage started.")
}

// ToCloudEvent converts a stage event. The document ID becomes the subject.
func ToCloudEvent(e pipeline.Event) (cloudevents.Event, error) {
	ce := cloudevents.NewEvent()
	ce.SetID(uuid.NewString())
	ce.SetSource(Source)
	ce.SetSubject(e.DocumentID)
	ce.SetTime(e.Time)
	ce.SetType(StageEventType)
	if e.Degraded {
		ce.SetType(DegradedEventType)
	}
	if err := ce.SetData(cloudevents.ApplicationJSON, e); err != nil {
		return ce, fmt.Errorf("failed to set event data: %w", err)
	}
	return ce, nil
}

// FromCloudEvent decodes the payload written by ToCloudEvent.
func FromCloudEvent(ce cloudevents.Event) (pipeline.Event, error) {
	var e pipeline.Event
	if err := json.Unmarshal(ce.Data(), &e); err != nil {
		return e, fmt.Errorf("json.Unmarshal: %w", err)
	}
	if e.DocumentID == "" {
		e.DocumentID = ce.Subject()
	}
	return e, nil
}

// CloudEventSink posts stage events to an HTTP CloudEvents receiver. Delivery
// failures are logged and never fail the pipeline.
type CloudEventSink struct {
	client  cloudevents.Client
	target  string
	timeout time.Duration
}

// NewCloudEventSink creates a sink that sends binary-mode HTTP events to target.
func NewCloudEventSink(target string) (*CloudEventSink, error) {
	if target == "" {
		return nil, fmt.Errorf("NewCloudEventSink: target cannot be empty")
	}
	client, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudevents client: %w", err)
	}
	return &CloudEventSink{client: client, target: target, timeout: defaultSendTimeout}, nil
}

func (s *CloudEventSink) StageChanged(ctx context.Context, e pipeline.Event) {
	logCtx := slog.With("documentId", e.DocumentID, "stage", e.Stage, "target", s.target)

	ce, err := ToCloudEvent(e)
	if err != nil {
		logCtx.Error("Could not build stage event", "error", err)
		return
	}

	// Detached from the request so a cancelled client still gets its events
	// delivered.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	sendCtx = cloudevents.ContextWithTarget(sendCtx, s.target)

	if result := s.client.Send(sendCtx, ce); cloudevents.IsUndelivered(result) {
		logCtx.Warn("Failed to deliver stage event", "error", result)
	} else if !cloudevents.IsACK(result) {
		logCtx.Warn("Stage event was not acknowledged", "result", result)
	}
}
