package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lllllllleong/legalease/internal/gcp"
	"github.com/Lllllllleong/legalease/internal/models"
)

const (
	simplifyTemperature     = 0.3
	simplifyTopP            = 1
	simplifyMaxOutputTokens = 2000

	unconfiguredPreviewRunes = 500
	errorPreviewRunes        = 800

	// EmptySimplification is returned when the model answers with no text.
	EmptySimplification = "Unable to simplify the document."
)

// Simplifier rewrites extracted legal text as plain-language markdown.
type Simplifier struct {
	backend gcp.Backend
}

// NewSimplifier creates a Simplifier around a hosted-model handle.
func NewSimplifier(backend gcp.Backend) *Simplifier {
	if backend == nil {
		backend = gcp.Unconfigured{}
	}
	return &Simplifier{backend: backend}
}

// Simplify never fails: without a usable backend it returns a fallback
// document that previews the input and says why.
func (s *Simplifier) Simplify(ctx context.Context, docID, text string) models.SimplificationResult {
	logCtx := slog.With("documentId", docID)
	logCtx.Info("Starting simplification.", "textLength", len(text), "backendConfigured", s.backend.Configured())

	result := models.SimplificationResult{SourceText: text}

	if !s.backend.Configured() {
		logCtx.Warn("Hosted model not configured; returning fallback simplification.", "degradedReason", models.DegradedUnconfigured)
		result.Markdown = unconfiguredSimplification(text)
		result.Mode = models.ModeFallback
		result.DegradedReason = models.DegradedUnconfigured
		return result
	}

	markdown, err := s.backend.Generate(ctx, gcp.Request{
		SystemInstruction: gcp.SimplifierSystemPrompt,
		Prompt:            gcp.SimplifierUserPrompt + text,
		Temperature:       simplifyTemperature,
		TopP:              simplifyTopP,
		MaxOutputTokens:   simplifyMaxOutputTokens,
	})
	if err != nil {
		reason := models.DegradedBackendError
		if errors.Is(err, gcp.ErrBackendUnavailable) {
			reason = models.DegradedUnconfigured
		}
		logCtx.Warn("Simplification call failed; returning fallback simplification.", "error", err, "degradedReason", reason)
		result.Markdown = errorSimplification(text, err)
		result.Mode = models.ModeFallback
		result.DegradedReason = reason
		return result
	}

	if strings.TrimSpace(markdown) == "" {
		logCtx.Warn("Model returned no text for simplification.")
		markdown = EmptySimplification
	}
	result.Markdown = markdown
	result.Mode = models.ModeModel

	logCtx.Info("Simplification complete.", "markdownLength", len(markdown))
	return result
}

// preview returns the first n runes of text, marking truncation with "...".
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func unconfiguredSimplification(text string) string {
	return fmt.Sprintf(`# 📋 Document Analysis

## 🔍 Document Overview
This appears to be a legal document that requires careful review. Since the AI service is not configured, here's a basic analysis based on the document content.

## 📝 Document Preview
`+"```"+`
%s
`+"```"+`

## ⚠️ Important Notice
**AI Service Configuration Required**: To get a detailed AI-powered analysis, set PROJECT_ID to a Google Cloud project with Vertex AI enabled.

## 📄 General Document Guidance

### 🔍 What to Look For:
- **Party Information**: Names and contact details of all involved parties
- **Effective Dates**: When the agreement starts and ends
- **Payment Terms**: Any financial obligations or payment schedules
- **Termination Clauses**: How and when the agreement can be ended
- **Dispute Resolution**: How conflicts will be handled

### ⚖️ General Legal Advice:
- **Read Thoroughly**: Review all terms and conditions carefully
- **Understand Obligations**: Know what you're agreeing to do
- **Note Deadlines**: Pay attention to any time-sensitive requirements
- **Keep Records**: Maintain copies of all signed documents
- **Ask Questions**: Don't hesitate to clarify unclear terms

## 🎯 Next Steps
1. **Complete Review**: Read through the entire document carefully
2. **Note Concerns**: Write down any questions or unclear sections
3. **Professional Consultation**: Consider consulting with a legal professional
4. **Proper Configuration**: Set up the AI service for detailed analysis

---

**💡 Remember**: This is a basic overview. For detailed legal advice specific to your situation, consult with a qualified attorney.`, preview(text, unconfiguredPreviewRunes))
}

func errorSimplification(text string, err error) string {
	return fmt.Sprintf(`**Document Analysis - AI Processing Error**

I encountered an issue while processing your document with AI: %[1]s

**Document Content Preview:**
%[2]s

**General Legal Document Advice:**
- This appears to be a legal document that may contain important terms and conditions
- Please review all sections carefully
- Pay special attention to any dates, deadlines, or obligations mentioned
- Consider consulting with a legal professional for detailed advice

**Common Things to Look For:**
- Party names and contact information
- Effective dates and expiration dates
- Payment terms or financial obligations
- Cancellation or termination clauses
- Dispute resolution procedures

**Recommendation:** For a detailed analysis, please ensure the AI service is properly configured or consult with a legal professional.

**Error Details:** %[1]s`, err.Error(), preview(text, errorPreviewRunes))
}
