// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haloaistud/friday-tui/internal/gemini"
)

// MaxMessages is the maximum number of messages to keep in conversation
// history. When exceeded, the oldest messages are pruned to prevent
// unbounded memory growth.
const MaxMessages = 1000

// Errors returned by conversation mutators.
var (
	// ErrTurnInFlight is returned when a new user submission arrives while
	// an assistant response is still streaming. Submissions are rejected,
	// not queued.
	ErrTurnInFlight = errors.New("a response is already in progress")

	// ErrEmptyMessage is returned for empty or whitespace-only submissions.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoSuchMessage is returned when an update targets an unknown ID.
	ErrNoSuchMessage = errors.New("no message with that id")

	// ErrNotStreaming is returned when a snapshot targets a message that
	// is not (or no longer) in flight.
	ErrNotStreaming = errors.New("message is not streaming")
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds an ordered chat history. Insertion order is display
// order is chronological order.
//
// Conversation is not safe for concurrent use; all mutation happens on the
// UI update loop, matching the single-logical-writer model.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []*Message

	// inFlightID is the ID of the streaming assistant message, or "" when
	// the conversation is idle. At most one turn is in flight at a time.
	inFlightID string

	// nextSeq feeds monotonic message IDs.
	nextSeq uint64
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// USER SUBMISSIONS
// =============================================================================

// AppendUser appends a user message. It rejects empty or whitespace-only
// text with ErrEmptyMessage and rejects any submission while an assistant
// response is in flight with ErrTurnInFlight; in both cases the
// conversation is left unchanged.
func (c *Conversation) AppendUser(text string, isVoice bool) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if c.inFlightID != "" {
		return nil, ErrTurnInFlight
	}

	c.nextSeq++
	msg := &Message{
		ID:        newMessageID(c.nextSeq),
		Role:      RoleUser,
		Text:      text,
		IsVoice:   isVoice,
		Timestamp: time.Now(),
	}
	c.append(msg)
	return msg, nil
}

// =============================================================================
// ASSISTANT TURN LIFECYCLE
// =============================================================================

// BeginAssistant appends an empty in-flight assistant message and marks
// the turn as busy. Callers must pair it with EndTurn in a guaranteed
// cleanup path so a failed stream never leaves the conversation stuck.
func (c *Conversation) BeginAssistant() *Message {
	c.nextSeq++
	msg := &Message{
		ID:          newMessageID(c.nextSeq),
		Role:        RoleAssistant,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
	c.append(msg)
	c.inFlightID = msg.ID
	return msg
}

// ApplySnapshot replaces the text and sources of the in-flight assistant
// message with a cumulative aggregator snapshot. Snapshots arrive in
// fragment order on a single logical thread, so each call strictly extends
// the previous one.
func (c *Conversation) ApplySnapshot(id string, snap gemini.Snapshot) error {
	msg := c.MessageByID(id)
	if msg == nil {
		return ErrNoSuchMessage
	}
	if !msg.IsStreaming {
		return ErrNotStreaming
	}

	msg.Text = snap.Text
	msg.Sources = msg.Sources[:0]
	for _, cit := range snap.Sources {
		msg.Sources = append(msg.Sources, Source{URI: cit.URI, Title: cit.Title})
	}
	c.UpdatedAt = time.Now()
	return nil
}

// EndTurn finalizes the in-flight assistant message, whether the stream
// completed or failed. The message keeps whatever content it accumulated;
// the conversation becomes ready for the next submission. Safe to call
// when no turn is in flight.
func (c *Conversation) EndTurn() {
	if c.inFlightID == "" {
		return
	}
	if msg := c.MessageByID(c.inFlightID); msg != nil {
		msg.IsStreaming = false
	}
	c.inFlightID = ""
	c.UpdatedAt = time.Now()
}

// AppendAssistantError appends a completed assistant message carrying an
// error text. A transport failure mid-stream preserves the partial answer
// and reports the failure as a sibling message rather than overwriting
// what was already delivered.
func (c *Conversation) AppendAssistantError(text string) *Message {
	c.nextSeq++
	msg := &Message{
		ID:        newMessageID(c.nextSeq),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}
	c.append(msg)
	return msg
}

// InFlight reports whether an assistant response is currently streaming.
func (c *Conversation) InFlight() bool {
	return c.inFlightID != ""
}

// InFlightID returns the ID of the streaming assistant message, or "".
func (c *Conversation) InFlightID() string {
	return c.inFlightID
}

// =============================================================================
// ACCESS
// =============================================================================

// MessageByID returns a message by its ID, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// FirstUserMessage returns the earliest user message, or nil.
func (c *Conversation) FirstUserMessage() *Message {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			return msg
		}
	}
	return nil
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes all messages and resets the turn state.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.inFlightID = ""
	c.UpdatedAt = time.Now()
}

// =============================================================================
// INTERNAL
// =============================================================================

func (c *Conversation) append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.prune()
}

// prune drops the oldest messages once the history exceeds MaxMessages.
// Never drops the in-flight message.
func (c *Conversation) prune() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	drop := len(c.Messages) - MaxMessages
	kept := make([]*Message, 0, MaxMessages)
	for i, msg := range c.Messages {
		if i < drop && msg.ID != c.inFlightID {
			continue
		}
		kept = append(kept, msg)
	}
	c.Messages = kept
}
