// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// STREAMING: SSE parsing for streamGenerateContent.

// =============================================================================
// STREAMING CONSTANTS
// =============================================================================

// MaxChunkSize is the maximum allowed size for a single SSE event (256KB).
// Grounded responses can carry large metadata blocks in one event.
const MaxChunkSize = 256 * 1024

// =============================================================================
// STREAMING TYPES
// =============================================================================

// Fragment is one decoded streaming event: an incremental text delta plus
// any grounding citations attached to that event.
type Fragment struct {
	TextDelta string
	Citations []Citation
}

// StreamCallback is called for each fragment as it arrives, in order, on
// the streaming goroutine.
type StreamCallback func(frag Fragment)

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// ReadEvent reads the next SSE event and returns its data payload.
// Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() ([]byte, error) {
	var dataLines [][]byte
	var size int

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// Flush any buffered data before EOF.
				if len(dataLines) > 0 {
					return bytes.Join(dataLines, []byte("\n")), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event.
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("data:")) {
			data := bytes.TrimSpace(line[5:])
			size += len(data)
			if size > MaxChunkSize {
				return nil, fmt.Errorf("event too large: %d bytes", size)
			}
			dataLines = append(dataLines, data)
		}
		// Ignore other fields (event:, id:, retry:, comments).
	}
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// ChatSession is a multi-turn conversation with the model. It keeps the
// turn history sent as context with each request. A failed turn is rolled
// back so a retry does not duplicate the user's message.
//
// ChatSession is not safe for concurrent use; at most one turn is in
// flight at a time.
type ChatSession struct {
	client  *Client
	history []Content
}

func newChatSession(c *Client) *ChatSession {
	return &ChatSession{client: c}
}

// History returns the session's turn history.
func (s *ChatSession) History() []Content {
	return s.history
}

// SeedHistory replaces the session history, used when resuming a saved
// conversation.
func (s *ChatSession) SeedHistory(history []Content) {
	s.history = history
}

// SendStream sends a user message and streams the model's answer. The
// callback fires once per fragment, in arrival order. On success the
// user turn and the accumulated model turn are committed to the history;
// on failure the history is left as it was before the call.
func (s *ChatSession) SendStream(ctx context.Context, text string, callback StreamCallback) error {
	if !s.client.IsConfigured() {
		return ErrNotConfigured
	}

	contents := append(append([]Content{}, s.history...), NewUserContent(text))

	var answer strings.Builder
	wrapped := func(frag Fragment) {
		answer.WriteString(frag.TextDelta)
		callback(frag)
	}

	if err := s.client.stream(ctx, contents, wrapped); err != nil {
		return err
	}

	s.history = append(s.history,
		NewUserContent(text),
		NewModelContent(answer.String()),
	)
	return nil
}

// =============================================================================
// STREAMING TRANSPORT
// =============================================================================

// stream performs a streamGenerateContent request and feeds decoded
// fragments to the callback. Supports context cancellation.
func (c *Client) stream(ctx context.Context, contents []Content, callback StreamCallback) error {
	body := c.buildRequest(contents)
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint("streamGenerateContent") + "?alt=sse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamingClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
		return handleErrorResponse(resp.StatusCode, respBody)
	}

	return processStream(ctx, resp.Body, callback)
}

// processStream reads and decodes the SSE stream.
func processStream(ctx context.Context, body io.Reader, callback StreamCallback) error {
	reader := NewSSEReader(body)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := reader.ReadEvent()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return &TransportError{Err: err}
		}

		var resp GenerateResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			// Skip malformed events.
			continue
		}

		frag := Fragment{
			TextDelta: resp.TextDelta(),
			Citations: resp.Citations(),
		}
		if frag.TextDelta != "" || len(frag.Citations) > 0 {
			callback(frag)
		}

		if resp.IsDone() {
			return nil
		}
	}
}
