// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package gemini

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Configuration constants for the Generative Language API.
const (
	// DefaultBaseURL is the base URL for the Generative Language API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTimeout is the default timeout for non-streaming requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps non-streaming response bodies.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

var (
	// Shared HTTP client with connection pooling for one-shot requests.
	sharedHTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		Timeout: DefaultTimeout,
	}

	// sharedStreamingClient is used for streaming requests. No client
	// timeout; lifetime is controlled via context.
	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")
)

// TransportError represents a failed exchange with the API: a non-2xx
// status, a connection failure, or a malformed response.
type TransportError struct {
	Status  int    // HTTP status, 0 for connection-level failures
	Message string // API error message when available
	Err     error  // underlying error, if any
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("Gemini error (HTTP %d)", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("Gemini request failed: %v", e.Err)
	default:
		return "Gemini request failed"
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// TranscriptionError represents a failed or empty audio transcription.
type TranscriptionError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transcription failed: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CLIENT
// =============================================================================

// Client communicates with the Generative Language API. It owns at most
// one chat session at a time, created lazily on the first streamed turn.
type Client struct {
	apiKey            string
	baseURL           string
	model             string
	systemInstruction string
	searchGrounding   bool

	httpClient      *http.Client
	streamingClient *http.Client

	mu      sync.Mutex
	session *ChatSession
}

// NewClient creates a new client with the given API key. An empty key is
// allowed; requests will then fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:          strings.TrimSpace(apiKey),
		baseURL:         DefaultBaseURL,
		model:           DefaultModel,
		searchGrounding: true,
		httpClient:      sharedHTTPClient,
		streamingClient: sharedStreamingClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model used for generation and transcription.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithSystemInstruction sets the persona instruction sent with every turn.
func (c *Client) WithSystemInstruction(instruction string) *Client {
	c.systemInstruction = instruction
	return c
}

// WithSearchGrounding toggles the search grounding tool.
func (c *Client) WithSearchGrounding(enabled bool) *Client {
	c.searchGrounding = enabled
	return c
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Session returns the current chat session, creating it on first use.
func (c *Client) Session() *ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.session = newChatSession(c)
	}
	return c.session
}

// ResetSession discards the chat session and its history. The next turn
// starts a fresh conversation with the model.
func (c *Client) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// setHeaders sets the common request headers, including the API key.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
}

// endpoint builds the URL for a model method such as "generateContent".
func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/models/%s:%s", c.baseURL, c.model, method)
}

// buildRequest assembles a generation request body from a turn history.
func (c *Client) buildRequest(contents []Content) GenerateRequest {
	req := GenerateRequest{Contents: contents}
	if c.systemInstruction != "" {
		req.SystemInstruction = &Content{
			Parts: []Part{{Text: c.systemInstruction}},
		}
	}
	if c.searchGrounding {
		req.Tools = []Tool{{GoogleSearch: &GoogleSearch{}}}
	}
	return req
}

// handleErrorResponse converts a non-2xx response body into a TransportError.
func handleErrorResponse(status int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &TransportError{Status: status, Message: apiErr.Error.Message}
	}
	return &TransportError{Status: status, Message: strings.TrimSpace(string(body))}
}

// =============================================================================
// ONE-SHOT GENERATION
// =============================================================================

// Generate performs a non-streaming generation for a single user prompt.
// Used by the one-shot CLI path; the chat UI always streams.
func (c *Client) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body := c.buildRequest([]Content{NewUserContent(prompt)})
	resp, err := c.post(ctx, c.endpoint("generateContent"), body)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// =============================================================================
// TRANSCRIPTION
// =============================================================================

// transcribePrompt instructs the model to return a verbatim transcript.
const transcribePrompt = "Transcribe this audio exactly. Return only the transcribed text, nothing else."

// Transcribe converts captured audio into text. The audio is sent inline,
// base64-encoded. An empty transcript is reported as a TranscriptionError
// so the caller never submits a blank message.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	if len(audio) == 0 {
		return "", &TranscriptionError{Reason: "no audio captured"}
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	body := GenerateRequest{
		Contents: []Content{{
			Role: "user",
			Parts: []Part{
				{Text: transcribePrompt},
				{InlineData: &InlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
			},
		}},
	}

	resp, err := c.post(ctx, c.endpoint("generateContent"), body)
	if err != nil {
		return "", &TranscriptionError{Reason: "request failed", Err: err}
	}

	text := strings.TrimSpace(resp.TextDelta())
	if text == "" {
		return "", &TranscriptionError{Reason: "empty transcript"}
	}
	return text, nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// post sends a JSON request and decodes a GenerateResponse.
func (c *Client) post(ctx context.Context, url string, body any) (*GenerateResponse, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleErrorResponse(resp.StatusCode, respBody)
	}

	var out GenerateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &out, nil
}
