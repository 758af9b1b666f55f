package models

// DocumentType is the extractor family an uploaded file is routed to.
type DocumentType string

const (
	TypePDF     DocumentType = "pdf"
	TypeDOCX    DocumentType = "docx"
	TypeImage   DocumentType = "image"
	TypeText    DocumentType = "text"
	TypeUnknown DocumentType = "unknown"
)

// Document represents a single uploaded file for the lifetime of one request.
// ID is a correlation token for logs and events; nothing is stored under it.
type Document struct {
	ID       string
	Filename string
	MIMEType string
	Type     DocumentType
	Data     []byte
}

// ExtractionResult is the plain text recovered from a Document. Text is
// always set, even when it is an advisory placeholder.
type ExtractionResult struct {
	Document *Document
	Text     string
	Warnings []string
}

// Mode records which path produced a simplification or translation.
type Mode string

const (
	ModeModel       Mode = "model"
	ModeFallback    Mode = "fallback"
	ModePassthrough Mode = "passthrough"
)

// Reasons attached to fallback results.
const (
	DegradedUnconfigured = "unconfigured"
	DegradedBackendError = "backend_error"
)

// SimplificationResult holds the plain-language markdown for a document.
type SimplificationResult struct {
	SourceText     string
	Markdown       string
	Mode           Mode
	DegradedReason string
}

// Degraded reports whether the markdown was produced without the hosted model.
func (r SimplificationResult) Degraded() bool {
	return r.Mode == ModeFallback
}

// StructureReport compares the markdown skeleton before and after translation.
type StructureReport struct {
	SourceHeadings  int  `json:"sourceHeadings"`
	OutputHeadings  int  `json:"outputHeadings"`
	SourceListItems int  `json:"sourceListItems"`
	OutputListItems int  `json:"outputListItems"`
	Preserved       bool `json:"preserved"`
}

// TranslationResult holds the translated markdown for one target language.
type TranslationResult struct {
	SourceText     string
	Language       string
	Markdown       string
	Mode           Mode
	DegradedReason string
	Structure      *StructureReport
}

// Degraded reports whether the markdown is a sample rather than a translation.
func (r TranslationResult) Degraded() bool {
	return r.Mode == ModeFallback
}

// PipelineBundle is the final response for one processed document.
type PipelineBundle struct {
	DocumentID    string   `json:"docId"`
	Filename      string   `json:"filename"`
	OriginalText  string   `json:"originalText"`
	Simplified    string   `json:"simplified"`
	Translated    *string  `json:"translated"`
	Language      string   `json:"language"`
	SimplifyMode  Mode     `json:"simplifyMode"`
	TranslateMode Mode     `json:"translateMode,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}
