// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package chat

import (
	"github.com/haloaistud/friday-tui/internal/config"
	"github.com/haloaistud/friday-tui/internal/gemini"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamFragmentMsg carries a cumulative snapshot of the in-flight
// assistant message. Snapshots arrive in fragment order; each fully
// replaces the previous one.
type StreamFragmentMsg struct {
	MessageID string
	Snapshot  gemini.Snapshot
}

// StreamCompleteMsg signals that the stream finished cleanly.
type StreamCompleteMsg struct {
	MessageID string
}

// StreamErrorMsg signals that the stream failed. Partial content already
// applied to the message is preserved.
type StreamErrorMsg struct {
	MessageID string
	Err       error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceStartedMsg signals that audio capture began.
type VoiceStartedMsg struct{}

// VoiceErrorMsg signals a capture failure.
type VoiceErrorMsg struct {
	Err error
}

// TranscriptionDoneMsg delivers the transcript of a stopped capture.
// A failed transcription carries Err and an empty Text.
type TranscriptionDoneMsg struct {
	Text string
	Err  error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ClearConversationMsg clears the conversation history.
type ClearConversationMsg struct{}

// ConversationSavedMsg reports the result of a save.
type ConversationSavedMsg struct {
	ID  string
	Err error
}

// MemorySavedMsg reports the result of a memory store write.
type MemorySavedMsg struct {
	Err error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly loaded configuration after the
// config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ErrorDismissMsg clears the transient error banner.
type ErrorDismissMsg struct{}

// statusExpireMsg clears a transient status line.
type statusExpireMsg struct{}
