package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// ErrBackendUnavailable is returned by an unconfigured Backend. Callers absorb
// it into a fallback document.
var ErrBackendUnavailable = errors.New("hosted model backend unavailable")

// PlaceholderProjectID is the value shipped in sample .env files.
const PlaceholderProjectID = "your_project_id_here"

// Request is a single prompt sent to the hosted model.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	TopP              float32
	MaxOutputTokens   int32
}

// Backend is the hosted-model handle shared by the simplifier and translator.
type Backend interface {
	Configured() bool
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}

// BackendConfig selects and authenticates the Vertex AI model.
type BackendConfig struct {
	ProjectID       string
	Region          string
	Model           string
	CredentialsFile string
}

// NewBackend returns a VertexClient, or an Unconfigured backend when no real
// project is set. A client construction failure is returned to the caller.
func NewBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" || projectID == PlaceholderProjectID {
		slog.Warn("Vertex AI project not configured; simplification and translation will use fallback output.")
		return Unconfigured{Reason: "PROJECT_ID is not set"}, nil
	}
	return NewVertexClient(ctx, cfg)
}

// VertexClient calls Gemini on Vertex AI.
type VertexClient struct {
	modelName  string
	baseClient *genai.Client
}

// NewVertexClient creates the underlying genai client once. Models are derived
// per request since each call carries its own system instruction.
func NewVertexClient(ctx context.Context, cfg BackendConfig) (*VertexClient, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	slog.Info("Vertex AI client initialized.", "projectId", cfg.ProjectID, "region", cfg.Region, "model", modelName)

	return &VertexClient{modelName: modelName, baseClient: baseClient}, nil
}

func (c *VertexClient) Configured() bool { return true }

func (c *VertexClient) model(req Request) *genai.GenerativeModel {
	model := c.baseClient.GenerativeModel(c.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemInstruction)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: genai.Ptr(req.MaxOutputTokens),
	}
	if req.TopP > 0 {
		model.GenerationConfig.TopP = genai.Ptr(req.TopP)
	}
	// Legal text regularly trips the default filters (violence, crime).
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}
	return model
}

// Generate sends one prompt and returns the concatenated text of the first
// candidate with any surrounding markdown fence removed.
func (c *VertexClient) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := c.model(req).GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from gemini: %w", err)
	}

	text := ResponseText(resp)
	if IsRefusal(text) {
		return "", fmt.Errorf("gemini response indicates refusal")
	}
	return text, nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

// ResponseText parses the model's response and extracts its text content.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var content strings.Builder
	var textPartsFound int
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content.WriteString(string(txt))
			textPartsFound++
		}
	}
	if textPartsFound > 1 {
		slog.Debug("Gemini response contained multiple text parts; they have been concatenated.", "parts", textPartsFound)
	}

	contentStr := strings.TrimSpace(content.String())
	contentStr = strings.TrimPrefix(contentStr, "```markdown")
	contentStr = strings.TrimPrefix(contentStr, "```")
	contentStr = strings.TrimSuffix(contentStr, "```")
	return strings.TrimSpace(contentStr)
}

var refusalPhrases = []string{
	"i am unable to",
	"i cannot fulfill",
	"i cannot answer",
	"i cannot provide",
	"as a large language model",
}

// refusalWindow bounds how far into a reply a refusal phrase may start.
// Phrases later in the reply are quoted document text.
const refusalWindow = 80

// IsRefusal reports whether text opens with the model declining the task.
func IsRefusal(text string) bool {
	opening := []rune(strings.TrimSpace(text))
	if len(opening) > refusalWindow {
		opening = opening[:refusalWindow]
	}
	lower := strings.ToLower(string(opening))
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Unconfigured stands in for the hosted model when no project is configured.
type Unconfigured struct {
	Reason string
}

func (Unconfigured) Configured() bool { return false }

func (u Unconfigured) Generate(context.Context, Request) (string, error) {
	if u.Reason == "" {
		return "", ErrBackendUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrBackendUnavailable, u.Reason)
}

func (Unconfigured) Close() error { return nil }
