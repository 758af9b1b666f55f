package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/legalease/internal/events"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/pipeline"
)

func TestRecordStageEvent(t *testing.T) {
	var buf bytes.Buffer
	monitor = events.LogObserver{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	ce, err := events.ToCloudEvent(pipeline.Event{
		DocumentID: "doc-9",
		Stage:      pipeline.StageSimplifying,
		Degraded:   true,
		Mode:       models.ModeFallback,
		Reason:     models.DegradedBackendError,
		Time:       time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, recordStageEvent(context.Background(), ce))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "doc-9", line["documentId"])
	assert.Equal(t, "simplifying", line["stage"])
}

func TestRecordStageEventAcksMalformedPayload(t *testing.T) {
	ce, err := events.ToCloudEvent(pipeline.Event{DocumentID: "doc-1", Stage: pipeline.StageDone})
	require.NoError(t, err)
	require.NoError(t, ce.SetData("application/json", []byte("not json")))

	assert.NoError(t, recordStageEvent(context.Background(), ce))
}
