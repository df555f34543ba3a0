// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package gemini

// WIRE TYPES: request/response structures for the Generative Language API.

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Content is a single turn in a generation request or response.
type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part is one piece of a content turn: text, or inline binary data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries base64-encoded binary payloads, such as captured audio.
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Tool enables a server-side capability for a request.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GoogleSearch enables search grounding. It carries no options.
type GoogleSearch struct{}

// GenerationConfig tunes the model's sampling behavior.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateRequest is the body for generateContent and streamGenerateContent.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// NewUserContent creates a user turn with a single text part.
func NewUserContent(text string) Content {
	return Content{Role: "user", Parts: []Part{{Text: text}}}
}

// NewModelContent creates a model turn with a single text part.
func NewModelContent(text string) Content {
	return Content{Role: "model", Parts: []Part{{Text: text}}}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is one response object: the full body of a generateContent
// call, or a single SSE event of a streamGenerateContent call.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated answer. Friday only ever uses the first.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GroundingMetadata lists the web sources a grounded answer drew on.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks"`
}

// GroundingChunk is a single grounding source. Only web sources are used.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource identifies a web page by URI and display title.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// TextDelta returns the concatenated text parts of the first candidate.
// For a streaming event this is the incremental delta; for a one-shot
// response it is the whole answer.
func (r *GenerateResponse) TextDelta() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, part := range r.Candidates[0].Content.Parts {
		out += part.Text
	}
	return out
}

// Citations returns the web grounding sources of the first candidate.
// Entries with no web source or an empty URI are dropped.
func (r *GenerateResponse) Citations() []Citation {
	if len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var cits []Citation
	for _, chunk := range r.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		cits = append(cits, Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return cits
}

// IsDone returns true if the first candidate carries a finish reason.
func (r *GenerateResponse) IsDone() bool {
	return len(r.Candidates) > 0 && r.Candidates[0].FinishReason != ""
}

// apiErrorResponse is the error envelope the API returns on non-2xx status.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
