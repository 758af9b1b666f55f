// Package pipeline runs one document through extraction, simplification and
// optional translation, reporting each stage transition.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lllllllleong/legalease/internal/extract"
	"github.com/Lllllllleong/legalease/internal/models"
	"github.com/Lllllllleong/legalease/internal/services"
)

// Stage is one step of the fixed pipeline.
type Stage string

const (
	StageUploading   Stage = "uploading"
	StageExtracting  Stage = "extracting"
	StageSimplifying Stage = "simplifying"
	StageTranslating Stage = "translating"
	StageDone        Stage = "done"
)

// Event is emitted when the pipeline enters a stage, and again with Degraded
// set when a stage produced fallback output.
type Event struct {
	DocumentID string      `json:"documentId"`
	Stage      Stage       `json:"stage"`
	Degraded   bool        `json:"degraded,omitempty"`
	Mode       models.Mode `json:"mode,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Time       time.Time   `json:"time"`
}

// Observer receives stage events in order. It must not block for long; the
// pipeline waits for it.
type Observer interface {
	StageChanged(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) StageChanged(ctx context.Context, e Event) { f(ctx, e) }

// Observers fans an event out to several observers.
type Observers []Observer

func (o Observers) StageChanged(ctx context.Context, e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.StageChanged(ctx, e)
		}
	}
}

// StageError tags a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Input is a single uploaded document plus the requested output language.
type Input struct {
	Filename string
	MIMEType string
	Data     []byte
	Language string
}

// DocumentExtractor is satisfied by *extract.Dispatcher.
type DocumentExtractor interface {
	Extract(ctx context.Context, doc *models.Document) (*models.ExtractionResult, error)
}

// DocumentSimplifier is satisfied by *services.Simplifier.
type DocumentSimplifier interface {
	Simplify(ctx context.Context, docID, text string) models.SimplificationResult
}

// DocumentTranslator is satisfied by *services.Translator.
type DocumentTranslator interface {
	Translate(ctx context.Context, docID, text, code string) models.TranslationResult
}

// Pipeline is stateless between runs and safe for concurrent use when its
// collaborators are.
type Pipeline struct {
	extractor  DocumentExtractor
	simplifier DocumentSimplifier
	translator DocumentTranslator
	observer   Observer
	now        func() time.Time
}

// New creates a Pipeline. A nil observer discards events.
func New(extractor DocumentExtractor, simplifier DocumentSimplifier, translator DocumentTranslator, observer Observer) *Pipeline {
	if observer == nil {
		observer = Observers(nil)
	}
	return &Pipeline{
		extractor:  extractor,
		simplifier: simplifier,
		translator: translator,
		observer:   observer,
		now:        time.Now,
	}
}

func (p *Pipeline) emit(ctx context.Context, docID string, stage Stage) {
	p.observer.StageChanged(ctx, Event{DocumentID: docID, Stage: stage, Time: p.now()})
}

func (p *Pipeline) emitDegraded(ctx context.Context, docID string, stage Stage, mode models.Mode, reason string) {
	p.observer.StageChanged(ctx, Event{
		DocumentID: docID,
		Stage:      stage,
		Degraded:   true,
		Mode:       mode,
		Reason:     reason,
		Time:       p.now(),
	})
}

// Run executes every stage at most once. Only upload and extraction can fail;
// simplification and translation degrade instead.
func (p *Pipeline) Run(ctx context.Context, in Input) (*models.PipelineBundle, error) {
	doc, err := extract.NewDocument(in.Filename, in.MIMEType, in.Data)
	if err != nil {
		slog.Warn("Rejected upload", "filename", in.Filename, "mimeType", in.MIMEType, "error", err)
		return nil, &StageError{Stage: StageUploading, Err: err}
	}

	logCtx := slog.With("documentId", doc.ID)
	logCtx.Info("Starting pipeline.", "filename", doc.Filename, "fileType", doc.Type, "bytes", len(doc.Data))
	p.emit(ctx, doc.ID, StageUploading)

	p.emit(ctx, doc.ID, StageExtracting)
	extracted, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		logCtx.Error("Pipeline aborted during extraction", "error", err)
		return nil, &StageError{Stage: StageExtracting, Err: err}
	}

	p.emit(ctx, doc.ID, StageSimplifying)
	simplified := p.simplifier.Simplify(ctx, doc.ID, extracted.Text)
	if simplified.Degraded() {
		p.emitDegraded(ctx, doc.ID, StageSimplifying, simplified.Mode, simplified.DegradedReason)
	}

	bundle := &models.PipelineBundle{
		DocumentID:   doc.ID,
		Filename:     doc.Filename,
		OriginalText: extracted.Text,
		Simplified:   simplified.Markdown,
		Language:     services.SourceLanguage,
		SimplifyMode: simplified.Mode,
		Warnings:     extracted.Warnings,
	}

	if lang := services.NormalizeCode(in.Language); lang != "" && lang != services.SourceLanguage {
		bundle.Language = lang
		p.emit(ctx, doc.ID, StageTranslating)
		translated := p.translator.Translate(ctx, doc.ID, simplified.Markdown, lang)
		if translated.Degraded() {
			p.emitDegraded(ctx, doc.ID, StageTranslating, translated.Mode, translated.DegradedReason)
		}
		bundle.Translated = &translated.Markdown
		bundle.TranslateMode = translated.Mode
	}

	p.emit(ctx, doc.ID, StageDone)
	logCtx.Info("Pipeline complete.",
		"simplifyMode", bundle.SimplifyMode,
		"translateMode", bundle.TranslateMode,
		"language", bundle.Language,
	)
	return bundle, nil
}
