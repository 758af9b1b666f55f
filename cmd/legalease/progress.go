package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/Lllllllleong/legalease/internal/pipeline"
)

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageUploading:   "Uploading document...",
	pipeline.StageExtracting:  "Extracting text...",
	pipeline.StageSimplifying: "Simplifying legal language...",
	pipeline.StageTranslating: "Translating...",
	pipeline.StageDone:        "Done",
}

// progress renders pipeline stage events as a spinner on a terminal.
type progress struct {
	mu      sync.Mutex
	out     io.Writer
	spin    *spinner.Spinner
	enabled bool
}

func newProgress(out io.Writer, enabled bool) *progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	return &progress{out: out, spin: s, enabled: enabled}
}

func (p *progress) Start() {
	if p.enabled {
		p.spin.Start()
	}
}

func (p *progress) Stop() {
	if p.enabled {
		p.spin.Stop()
	}
}

func (p *progress) StageChanged(_ context.Context, e pipeline.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}

	if e.Degraded {
		p.spin.Stop()
		color.New(color.FgYellow).Fprintf(p.out, "! %s used fallback output (%s)\n", e.Stage, e.Reason)
		p.spin.Start()
		return
	}

	p.spin.Lock()
	p.spin.Suffix = " " + stageLabel(e.Stage)
	p.spin.Unlock()
}

func stageLabel(stage pipeline.Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return fmt.Sprintf("%s...", stage)
}
