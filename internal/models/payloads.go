package models

// These structs define the JSON payloads exchanged between the client and
// the per-stage HTTP functions.

// UploadResponse is the output of the upload function.
type UploadResponse struct {
	Success  bool         `json:"success"`
	DocID    string       `json:"docId"`
	Filename string       `json:"filename"`
	FileType DocumentType `json:"fileType"`
	Buffer   string       `json:"buffer"`
}

// ExtractTextRequest is the input for the extract-text function.
type ExtractTextRequest struct {
	DocID    string       `json:"docId"`
	Buffer   string       `json:"buffer"`
	FileType DocumentType `json:"fileType"`
}

// ExtractTextResponse is the output of the extract-text function.
type ExtractTextResponse struct {
	Success  bool     `json:"success"`
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}

// SimplifyTextRequest is the input for the simplify-text function.
type SimplifyTextRequest struct {
	DocID string `json:"docId"`
	Text  string `json:"text"`
}

// SimplifyTextResponse is the output of the simplify-text function.
type SimplifyTextResponse struct {
	Success    bool   `json:"success"`
	Simplified string `json:"simplified"`
	Mode       Mode   `json:"mode"`
}

// TranslateRequest is the input for the translate function.
type TranslateRequest struct {
	DocID      string `json:"docId"`
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

// TranslateResponse is the output of the translate function.
type TranslateResponse struct {
	Success    bool             `json:"success"`
	Translated string           `json:"translated"`
	Mode       Mode             `json:"mode"`
	Structure  *StructureReport `json:"structure,omitempty"`
}

// ErrorResponse is returned by every function on failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}
