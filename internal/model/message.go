// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Friday"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a web grounding citation attached to an assistant message.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// User messages are immutable after creation. Assistant messages start
// empty with IsStreaming set and are mutated only through
// Conversation.ApplySnapshot until the turn finalizes.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	Text string `json:"text"`

	// Sources is append-only, unique by URI, assistant messages only.
	Sources []Source `json:"sources,omitempty"`

	// IsVoice marks user messages that originated from transcribed audio.
	IsVoice bool `json:"is_voice,omitempty"`

	// IsStreaming is true while the response aggregator is still appending.
	IsStreaming bool `json:"-"`
}

// IsEmpty returns true if the message has no content yet.
func (m *Message) IsEmpty() bool {
	return len(m.Text) == 0
}

// Preview returns a truncated single-line preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// HasSources returns true if the message carries grounding citations.
func (m *Message) HasSources() bool {
	return len(m.Sources) > 0
}

// newMessageID formats a conversation-local sequence number as an opaque
// message ID. Sequence-based IDs stay monotonic in creation order, which
// keeps list rendering and update-by-id stable.
func newMessageID(seq uint64) string {
	return fmt.Sprintf("msg_%08d", seq)
}
